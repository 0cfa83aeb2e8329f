package user

import "time"

type User struct {
	ID          string
	Username    string
	Email       string
	IsActive    bool
	CreatedAt   *time.Time
	LastLoginAt *time.Time
}
