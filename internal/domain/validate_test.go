package domain

import (
	"errors"
	"testing"
)

func TestValidLeadDraftPasses(t *testing.T) {
	draft := LeadDraft{
		Name:   "Acme Corp",
		Email:  "sales@acme.com",
		Phone:  "+1 (555) 010-2000",
		Status: "pending",
		Tags:   []string{"priority"},
	}
	if err := ValidateDraft(draft); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestLeadDraftRejectsMissingAndMalformedFields(t *testing.T) {
	draft := LeadDraft{
		Name:   "",
		Email:  "nope",
		Phone:  "call me maybe",
		Status: "imaginary",
	}
	err := ValidateDraft(draft)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, field := range []string{"Name", "Email", "Phone", "Status"} {
		if _, ok := validationErr.Fields[field]; !ok {
			t.Fatalf("expected field %s to fail, got %v", field, validationErr.Fields)
		}
	}
}

func TestLeadDraftOptionalFieldsMayBeEmpty(t *testing.T) {
	draft := LeadDraft{Name: "Acme", Email: "sales@acme.com"}
	if err := ValidateDraft(draft); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestUserDraftEnforcesPasswordLengthAndRole(t *testing.T) {
	err := ValidateDraft(UserDraft{
		Name:     "New Hire",
		Email:    "hire@crm.test",
		Password: "short",
		Role:     "ceo",
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := validationErr.Fields["Password"]; !ok {
		t.Fatalf("expected password failure, got %v", validationErr.Fields)
	}
	if _, ok := validationErr.Fields["Role"]; !ok {
		t.Fatalf("expected role failure, got %v", validationErr.Fields)
	}

	if err := ValidateDraft(UserDraft{
		Name:     "New Hire",
		Email:    "hire@crm.test",
		Password: "longenough",
		Role:     "sales",
	}); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestActivityDraftEnforcesLimits(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}

	err := ValidateDraft(ActivityDraft{
		LeadID:          0,
		Type:            "status_change",
		Description:     "",
		DurationMinutes: -5,
		Outcome:         string(long),
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, field := range []string{"LeadID", "Type", "Description", "DurationMinutes", "Outcome"} {
		if _, ok := validationErr.Fields[field]; !ok {
			t.Fatalf("expected field %s to fail, got %v", field, validationErr.Fields)
		}
	}
}

func TestValidActivityDraftPasses(t *testing.T) {
	if err := ValidateDraft(ActivityDraft{
		LeadID:      4,
		Type:        "call",
		Description: "Quarterly check-in",
	}); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestParseLeadStatusNormalizesInput(t *testing.T) {
	status, err := ParseLeadStatus("  Follow_Up ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != LeadStatusFollowUp {
		t.Fatalf("expected follow_up, got %s", status)
	}

	if _, err := ParseLeadStatus("archived"); !errors.Is(err, ErrInvalidLeadStatus) {
		t.Fatalf("expected ErrInvalidLeadStatus, got %v", err)
	}
}

func TestParseActivityTypeRejectsStatusChange(t *testing.T) {
	if _, err := ParseActivityType("note"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// status_change entries come from the backend, never from user input.
	if _, err := ParseActivityType("status_change"); !errors.Is(err, ErrInvalidActivityType) {
		t.Fatalf("expected ErrInvalidActivityType, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleManager {
		t.Fatalf("expected manager, got %s", role)
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
