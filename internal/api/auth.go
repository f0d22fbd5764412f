package api

import (
	"context"
	"net/http"

	"github.com/unionmaster/crm-console/internal/domain"
)

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the operator profile.
func (c *Client) Login(ctx context.Context, credentials domain.Credentials) (string, domain.User, error) {
	var resp loginResponse
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", credentials, &resp); err != nil {
		return "", domain.User{}, err
	}
	return resp.Token, resp.User, nil
}
