package apiclient

import (
	"context"

	"github.com/helper-labs/helper-portal/internal/model"
)

// GetID asks the server who the stored cookies belong to. An empty string
// means nobody is logged in.
func (c *Client) GetID(ctx context.Context) (string, error) {
	payload, err := c.get(ctx, pathGetID, nil)
	if err != nil {
		return "", err
	}
	return text(payload), nil
}

// Login authenticates; the server answers with token cookies that land in the jar.
func (c *Client) Login(ctx context.Context, memberID, password string) (string, error) {
	return c.postText(ctx, pathLogin, model.AuthRequest{MemberID: memberID, Password: password})
}

// Logout asks the server to revoke memberID's refresh token.
func (c *Client) Logout(ctx context.Context, memberID string) (string, error) {
	return c.postText(ctx, pathLogout, model.AuthRequest{MemberID: memberID})
}

// SignUp registers a new member.
func (c *Client) SignUp(ctx context.Context, memberID, password string) (string, error) {
	return c.postText(ctx, pathSignUp, model.AuthRequest{MemberID: memberID, Password: password})
}

// ValidateMemberID checks that memberID is not taken. A 400 means it is.
func (c *Client) ValidateMemberID(ctx context.Context, memberID string) (string, error) {
	return c.postText(ctx, pathValidateMemberID, model.AuthRequest{MemberID: memberID})
}
