package models

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleCommon Role = "COMMON"
	RoleAdmin  Role = "ADMIN"
)

// User represents a registered account. Password holds the bcrypt hash,
// never the plain credential.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	UserName   string    `json:"user_name"`
	Password   string    `json:"-"`
	Role       Role      `json:"role"`
	ProfileImg string    `json:"profile_img,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TokenUserInfo is the caller identity carried by a verified access token.
type TokenUserInfo struct {
	UserID string
	Role   Role
}
