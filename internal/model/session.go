package model

// Session is who is acting right now.
type Session struct {
	MemberID   string `json:"memberId"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// Credentials are the token cookies attached to privileged requests.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// HasRefresh reports whether a refresh token is present.
func (c Credentials) HasRefresh() bool {
	return c.RefreshToken != ""
}
