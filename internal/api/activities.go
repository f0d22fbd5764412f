package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/unionmaster/crm-console/internal/domain"
)

// ListLeadActivities fetches the timeline for one lead.
func (c *Client) ListLeadActivities(ctx context.Context, leadID int64) ([]domain.Activity, error) {
	var activities []domain.Activity
	path := fmt.Sprintf("/activities/lead/%d", leadID)
	if err := c.do(ctx, "activities.list", http.MethodGet, path, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateActivity logs an activity against a lead.
func (c *Client) CreateActivity(ctx context.Context, draft domain.ActivityDraft) (domain.Activity, error) {
	if err := domain.ValidateDraft(draft); err != nil {
		return domain.Activity{}, err
	}
	var activity domain.Activity
	if err := c.do(ctx, "activities.create", http.MethodPost, "/activities", draft, &activity); err != nil {
		return domain.Activity{}, err
	}
	return activity, nil
}
