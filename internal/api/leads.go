package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/unionmaster/crm-console/internal/domain"
)

// ListLeads fetches the full lead collection.
func (c *Client) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	var leads []domain.Lead
	if err := c.do(ctx, "leads.list", http.MethodGet, "/leads", nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// CreateLead submits a new lead and returns the backend's record of it.
func (c *Client) CreateLead(ctx context.Context, draft domain.LeadDraft) (domain.Lead, error) {
	if err := domain.ValidateDraft(draft); err != nil {
		return domain.Lead{}, err
	}
	var lead domain.Lead
	if err := c.do(ctx, "leads.create", http.MethodPost, "/leads", draft, &lead); err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}

// UpdateLead replaces the editable fields of a lead.
func (c *Client) UpdateLead(ctx context.Context, id int64, draft domain.LeadDraft) (domain.Lead, error) {
	if err := domain.ValidateDraft(draft); err != nil {
		return domain.Lead{}, err
	}
	var lead domain.Lead
	path := fmt.Sprintf("/leads/%d", id)
	if err := c.do(ctx, "leads.update", http.MethodPut, path, draft, &lead); err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}

// UpdateLeadStatus transitions a lead to a new pipeline stage.
func (c *Client) UpdateLeadStatus(ctx context.Context, id int64, status domain.LeadStatus) (domain.Lead, error) {
	var lead domain.Lead
	path := fmt.Sprintf("/leads/%d", id)
	if err := c.do(ctx, "leads.update_status", http.MethodPut, path, domain.StatusChange{Status: status}, &lead); err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}

// DeleteLead removes a lead.
func (c *Client) DeleteLead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/leads/%d", id)
	return c.do(ctx, "leads.delete", http.MethodDelete, path, nil, nil)
}
