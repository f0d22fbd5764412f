package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ActivityType enumerates the kinds of activity logged against a lead.
type ActivityType string

const (
	ActivityTypeNote         ActivityType = "note"
	ActivityTypeCall         ActivityType = "call"
	ActivityTypeMeeting      ActivityType = "meeting"
	ActivityTypeStatusChange ActivityType = "status_change"
)

// ErrInvalidActivityType indicates a type value outside the enumerated set.
var ErrInvalidActivityType = errors.New("domain: invalid activity type")

// ParseActivityType validates raw input and returns an ActivityType.
// status_change entries are written by the backend only, so they are not
// accepted as user input here.
func ParseActivityType(rawInput string) (ActivityType, error) {
	switch strings.ToLower(strings.TrimSpace(rawInput)) {
	case string(ActivityTypeNote):
		return ActivityTypeNote, nil
	case string(ActivityTypeCall):
		return ActivityTypeCall, nil
	case string(ActivityTypeMeeting):
		return ActivityTypeMeeting, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidActivityType, rawInput)
	}
}

// Activity is an immutable timeline entry for a lead. Entries are never
// edited or deleted after creation; views order them newest first.
type Activity struct {
	ID              int64        `json:"id"`
	LeadID          int64        `json:"leadId"`
	Type            ActivityType `json:"type"`
	Subject         string       `json:"subject,omitempty"`
	Description     string       `json:"description"`
	ScheduledAt     *time.Time   `json:"scheduledAt,omitempty"`
	DurationMinutes int          `json:"durationMinutes,omitempty"`
	Location        string       `json:"location,omitempty"`
	Outcome         string       `json:"outcome,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// Key implements store.Keyed.
func (a Activity) Key() int64 { return a.ID }

// ActivityDraft carries user input for logging an activity. Field limits
// mirror what the backend enforces.
type ActivityDraft struct {
	LeadID          int64      `json:"leadId" validate:"required,gt=0"`
	Type            string     `json:"type" validate:"required,activity_type"`
	Subject         string     `json:"subject,omitempty" validate:"omitempty,max=120"`
	Description     string     `json:"description" validate:"required"`
	ScheduledAt     *time.Time `json:"scheduledAt,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty" validate:"omitempty,gt=0"`
	Location        string     `json:"location,omitempty" validate:"omitempty,max=120"`
	Outcome         string     `json:"outcome,omitempty" validate:"omitempty,max=250"`
}
