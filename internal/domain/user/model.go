package user

import (
	"strings"

	"github.com/hotelhub/hotelhub/internal/types"
)

type User struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	Phone        string         `db:"phone" json:"phone"`
	Role         types.UserRole `db:"role" json:"role"`
	PasswordHash string         `db:"password_hash" json:"-"`
	types.BaseModel
}

// NormalizeEmail lower-cases and trims an address for uniqueness checks
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) IsStaff() bool {
	return u.Role == types.UserRoleAdmin || u.Role == types.UserRoleEmployee
}
