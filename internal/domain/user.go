package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"user_id"`
	CompanyID    uuid.UUID  `json:"company_id" db:"company_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	CompanyName string `json:"company_name" validate:"required,min=2"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleWorker     UserRole = "worker"
	RoleSupervisor UserRole = "supervisor"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleWorker, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// HasRole reports whether the user's role grants at least the given role.
// admin > supervisor > worker.
func (u *User) HasRole(role string) bool {
	rank := map[string]int{
		string(RoleWorker):     1,
		string(RoleSupervisor): 2,
		string(RoleAdmin):      3,
	}
	return rank[u.Role] >= rank[role] && rank[role] > 0
}
