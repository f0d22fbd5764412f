package store

import (
	"testing"

	"github.com/unionmaster/crm-console/internal/domain"
)

func seededLeadStore() *LeadStore {
	leads := NewLeadStore()
	leads.BulkReplace([]domain.Lead{
		{ID: 1, Name: "Alice Mercer", Email: "alice@acme.com", Phone: "+1 (555) 010-2000", Status: domain.LeadStatusPending},
		{ID: 2, Name: "Bob Tran", Email: "bob@globex.com", Phone: "555-3000", Status: domain.LeadStatusConverted},
		{ID: 3, Name: "Carla Diaz", Email: "carla@acme.com", Phone: "555-4000", Status: domain.LeadStatusPending},
	})
	return leads
}

func TestFilterAllStatusesReturnsEverything(t *testing.T) {
	leads := seededLeadStore()

	if got := leads.Filter("all", ""); len(got) != 3 {
		t.Fatalf("expected 3 leads for status all, got %d", len(got))
	}
	if got := leads.Filter("", ""); len(got) != 3 {
		t.Fatalf("expected 3 leads for empty status, got %d", len(got))
	}
}

func TestFilterByStatus(t *testing.T) {
	leads := seededLeadStore()

	got := leads.Filter("pending", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 pending leads, got %d", len(got))
	}
	for _, l := range got {
		if l.Status != domain.LeadStatusPending {
			t.Fatalf("unexpected status %s in filtered result", l.Status)
		}
	}
}

func TestFilterQueryMatchesNameCaseInsensitive(t *testing.T) {
	leads := seededLeadStore()

	got := leads.Filter("", "ALICE")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected lead 1 for query ALICE, got %+v", got)
	}
}

func TestFilterQueryMatchesEmailDomain(t *testing.T) {
	leads := seededLeadStore()

	got := leads.Filter("", "acme.com")
	if len(got) != 2 {
		t.Fatalf("expected 2 acme leads, got %d", len(got))
	}
}

func TestFilterQueryMatchesPhoneSubstring(t *testing.T) {
	leads := seededLeadStore()

	got := leads.Filter("", "010-2000")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected lead 1 for phone fragment, got %+v", got)
	}
}

func TestFilterCombinesStatusAndQuery(t *testing.T) {
	leads := seededLeadStore()

	got := leads.Filter("pending", "acme.com")
	if len(got) != 2 {
		t.Fatalf("expected 2 pending acme leads, got %d", len(got))
	}

	got = leads.Filter("converted", "acme.com")
	if len(got) != 0 {
		t.Fatalf("expected no converted acme leads, got %d", len(got))
	}
}
