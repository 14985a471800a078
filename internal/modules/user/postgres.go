package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/ims-backend/internal/database"
	"github.com/jmoiron/sqlx"
)

type sqlRepository struct {
	db *sqlx.DB
}

// NewSQLRepository creates a user repository on the configured driver.
func NewSQLRepository(db *sqlx.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) CreateUser(ctx context.Context, u *User) error {
	id, err := database.InsertID(ctx, r.db, "user_id", `
		INSERT INTO users (username, password_hash, first_name, last_name, role)
		VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Role)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *sqlRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getOne(ctx, `WHERE username = ?`, username)
}

func (r *sqlRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, `WHERE user_id = ?`, id)
}

func (r *sqlRepository) getOne(ctx context.Context, where string, arg interface{}) (*User, error) {
	u := &User{}
	err := r.db.GetContext(ctx, u, r.db.Rebind(`
		SELECT user_id, username, password_hash, first_name, last_name, role
		FROM users `+where), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
