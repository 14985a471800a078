package user

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is an IMS operator. Orders created by hand are attributed to a user.
type User struct {
	ID           int64  `db:"user_id" json:"userID"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	FirstName    string `db:"first_name" json:"firstName"`
	LastName     string `db:"last_name" json:"lastName"`
	Role         string `db:"role" json:"role"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin staff"`
}
