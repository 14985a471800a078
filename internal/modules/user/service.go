package user

import (
	"context"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperr.Unexpected(err, "error checking username")
	}
	if existing != nil {
		return nil, apperr.Conflict("Username %q is already taken.", req.Username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Unexpected(err, "error hashing password")
	}

	u := &User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, apperr.Unexpected(err, "error creating user")
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching user")
	}
	if u == nil {
		return nil, apperr.NotFound("User not found.")
	}
	return u, nil
}
