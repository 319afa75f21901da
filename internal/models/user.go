package models

import "time"

// Role is the coarse permission class of a user.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// ID returns the numeric role id carried in tokens.
func (r Role) ID() int {
	switch r {
	case RoleCustomer:
		return 1
	case RoleAdmin:
		return 2
	}
	return 0
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r.ID() != 0
}

// User represents an account that can authenticate against the API.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	Image     *string   `json:"image" gorm:"type:text"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserClaims is the verified identity extracted from a bearer token.
type UserClaims struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
	Role  Role    `json:"role"`
}

// HasRole reports whether the claims carry one of the given roles.
func (c *UserClaims) HasRole(roles ...Role) bool {
	if c == nil {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
