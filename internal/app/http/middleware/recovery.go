package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookingsvc/internal/app/dto"
	"bookingsvc/internal/domain"
	"bookingsvc/internal/eventbus"
)

// ZapRecovery turns a handler panic into a 500 and reports it as app:error.
func ZapRecovery(log *zap.Logger, events eventbus.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", zap.Any("panic", rec))
				if events != nil {
					eventbus.PublishSync(c.Request.Context(), events, domain.AppErrorTopic, domain.AppError{
						Method: c.Request.Method,
						Path:   c.FullPath(),
						Err:    fmt.Sprint(rec),
						Panic:  true,
					})
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: dto.Error{
						Code:    "INTERNAL_ERROR",
						Message: "internal server error",
					},
				})
			}
		}()

		c.Next()
	}
}
