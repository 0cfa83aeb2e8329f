package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingsvc/internal/app/dto"
	"bookingsvc/internal/domain/user"
)

func toUserDTO(u user.User) dto.User {
	return dto.User{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func (h *Handler) AuthRegister(c *gin.Context) {
	var body struct {
		UserID   string `json:"user_id" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "user_id, username and a valid email are required")
		return
	}

	u, err := h.UserSvc.Register(c.Request.Context(), body.UserID, body.Username, body.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserDTO(u)})
}

func (h *Handler) AuthLogin(c *gin.Context) {
	var body struct {
		UserID string `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "user_id is required")
		return
	}

	u, err := h.UserSvc.Login(c.Request.Context(), body.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserDTO(u)})
}

func (h *Handler) UserSetIsActive(c *gin.Context) {
	var body struct {
		UserID   string `json:"user_id" binding:"required"`
		IsActive bool   `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "user_id is required")
		return
	}

	u, err := h.UserSvc.SetUserActive(c.Request.Context(), body.UserID, body.IsActive)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserDTO(u)})
}
