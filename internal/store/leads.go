package store

import (
	"strings"

	"github.com/unionmaster/crm-console/internal/domain"
)

// LeadStore owns the lead collection.
type LeadStore struct {
	*Collection[domain.Lead]
}

// NewLeadStore returns an empty lead store.
func NewLeadStore() *LeadStore {
	return &LeadStore{Collection: NewCollection[domain.Lead]()}
}

// Filter returns leads matching a pipeline stage and a free-text query.
// status "" or "all" matches every stage; the query is a case-insensitive
// substring match over name and email, and a plain substring match over
// phone.
func (s *LeadStore) Filter(status, query string) []domain.Lead {
	status = strings.ToLower(strings.TrimSpace(status))
	query = strings.TrimSpace(query)
	loweredQuery := strings.ToLower(query)

	matched := make([]domain.Lead, 0)
	for _, lead := range s.Snapshot() {
		if status != "" && status != "all" && string(lead.Status) != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(lead.Name), loweredQuery) &&
			!strings.Contains(strings.ToLower(lead.Email), loweredQuery) &&
			!strings.Contains(lead.Phone, query) {
			continue
		}
		matched = append(matched, lead)
	}
	return matched
}
