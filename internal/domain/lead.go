package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LeadStatus enumerates the pipeline stages a lead moves through.
type LeadStatus string

const (
	LeadStatusPending   LeadStatus = "pending"
	LeadStatusVerified  LeadStatus = "verified"
	LeadStatusFollowUp  LeadStatus = "follow_up"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
	LeadStatusRejected  LeadStatus = "rejected"
)

// PipelineOrder is the canonical stage ordering used by pipeline views.
var PipelineOrder = []LeadStatus{
	LeadStatusPending,
	LeadStatusVerified,
	LeadStatusFollowUp,
	LeadStatusConverted,
	LeadStatusLost,
	LeadStatusRejected,
}

// ErrInvalidLeadStatus indicates a status value outside the enumerated set.
var ErrInvalidLeadStatus = errors.New("domain: invalid lead status")

// ParseLeadStatus validates raw input and returns a LeadStatus.
func ParseLeadStatus(rawInput string) (LeadStatus, error) {
	trimmed := strings.ToLower(strings.TrimSpace(rawInput))
	for _, status := range PipelineOrder {
		if trimmed == string(status) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLeadStatus, rawInput)
}

// String returns the wire value of the status.
func (s LeadStatus) String() string {
	return string(s)
}

// AssignedUser is the weak reference a lead carries to its owner.
type AssignedUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Lead is a pipeline entry as served by the CRM backend.
//
// Version is a monotonic revision stamped by the backend on every write.
// Stores use it to reject realtime updates that arrive behind a newer state.
type Lead struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Status     LeadStatus    `json:"status"`
	Tags       []string      `json:"tags,omitempty"`
	AssignedTo *AssignedUser `json:"assignedTo,omitempty"`
	Version    int64         `json:"version,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Key implements store.Keyed.
func (l Lead) Key() int64 { return l.ID }

// Revision implements store.Revisioned.
func (l Lead) Revision() int64 { return l.Version }

// LeadDraft carries user input for creating or editing a lead.
type LeadDraft struct {
	Name   string   `json:"name" validate:"required"`
	Email  string   `json:"email" validate:"required,email"`
	Phone  string   `json:"phone,omitempty" validate:"omitempty,phone_chars"`
	Status string   `json:"status,omitempty" validate:"omitempty,lead_status"`
	Tags   []string `json:"tags,omitempty"`
}

// StatusChange is the payload for a status-only lead update.
type StatusChange struct {
	Status LeadStatus `json:"status"`
}
