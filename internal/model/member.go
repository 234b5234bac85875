package model

import "time"

const (
	RoleMember = "ROLE_MEMBER"
	RoleAdmin  = "ROLE_ADMIN"
)

// AuthRequest is the body of the /auth endpoints.
type AuthRequest struct {
	MemberID string `json:"member_id"`
	Password string `json:"pw,omitempty"`
}

// Member is an account held by the dev server.
type Member struct {
	MemberID     string    `json:"member_id"`
	PasswordHash string    `json:"password_hash"`
	Auth         string    `json:"auth"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken records an issued refresh token so logout can revoke it.
type RefreshToken struct {
	Token     string    `json:"token"`
	MemberID  string    `json:"member_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
