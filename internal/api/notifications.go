package api

import (
	"context"
	"net/http"

	"github.com/unionmaster/crm-console/internal/domain"
)

// ListNotifications fetches the notification feed.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := c.do(ctx, "notifications.list", http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllNotificationsRead flips every notification to read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, "notifications.mark_all_read", http.MethodPut, "/notifications/mark-all-read", nil, nil)
}
