package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/config"
	"github.com/georgemunganga/ims-backend/internal/modules/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	userRepo user.Repository
	jwtKey   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, cfg config.JWTConfig) Service {
	return &service{userRepo: userRepo, jwtKey: []byte(cfg.Secret), ttl: cfg.TTL, now: time.Now}
}

func (s *service) Login(ctx context.Context, username, password string) (*Token, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching user")
	}
	if u == nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	now := s.now()
	expirationTime := now.Add(s.ttl)
	claims := &Claims{
		UserID: u.ID,
		Role:   u.Role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, apperr.Unexpected(err, "error signing token")
	}

	return &Token{AccessToken: tokenString, TokenType: "bearer", ExpiresAt: expirationTime}, nil
}

func (s *service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
