package entity

type UserRole string

const (
	RoleClinician UserRole = "clinician"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsVerified   bool     `db:"is_verified"`
	IsActive     bool     `db:"is_active"`
}
