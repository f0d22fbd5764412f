package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/unionmaster/crm-console/internal/domain"
)

// ListUsers fetches the operator accounts.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, "users.list", http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a new operator account.
func (c *Client) CreateUser(ctx context.Context, draft domain.UserDraft) (domain.User, error) {
	if err := domain.ValidateDraft(draft); err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := c.do(ctx, "users.create", http.MethodPost, "/users", draft, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// DeleteUser removes an operator account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/users/%d", id)
	return c.do(ctx, "users.delete", http.MethodDelete, path, nil, nil)
}
