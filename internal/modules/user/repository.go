package user

import "context"

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	// GetByUsername and GetByID return nil when no user matches.
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
