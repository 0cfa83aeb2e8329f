package pg

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, username, email, is_active, created_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (user.User, error) {
	var (
		u         user.User
		createdAt sql.NullTime
		lastLogin sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.IsActive, &createdAt, &lastLogin); err != nil {
		return user.User{}, err
	}
	u.CreatedAt = timePtr(createdAt)
	u.LastLoginAt = timePtr(lastLogin)
	return u, nil
}

func userNotFound() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    "user not found",
		HTTPStatus: http.StatusNotFound,
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	created, err := scanUser(queryRow(ctx, r.db,
		`INSERT INTO users (user_id, username, email, is_active)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO NOTHING
		 RETURNING `+userColumns,
		u.ID, u.Username, u.Email, u.IsActive,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, &domain.DomainError{
			Code:       domain.ErrorCodeUserExists,
			Message:    "user_id already exists",
			HTTPStatus: http.StatusConflict,
		}
	}
	return created, err
}

func (r *UserRepository) SetActive(ctx context.Context, userID string, isActive bool) (user.User, error) {
	u, err := scanUser(queryRow(ctx, r.db,
		`UPDATE users
		    SET is_active = $2
		  WHERE user_id = $1
		  RETURNING `+userColumns,
		userID, isActive,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, userNotFound()
	}
	return u, err
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, error) {
	u, err := scanUser(queryRow(ctx, r.db,
		`SELECT `+userColumns+`
		   FROM users
		  WHERE user_id = $1`,
		userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, userNotFound()
	}
	return u, err
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	res, err := exec(ctx, r.db,
		`UPDATE users SET last_login_at = $2 WHERE user_id = $1`,
		userID, at,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return userNotFound()
	}
	return nil
}
