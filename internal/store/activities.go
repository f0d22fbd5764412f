package store

import (
	"sort"

	"github.com/unionmaster/crm-console/internal/domain"
)

// ActivityStore owns the activity timeline. Entries are append-only and the
// collection is kept sorted by createdAt descending no matter which path
// inserted them.
type ActivityStore struct {
	collection *Collection[domain.Activity]
}

// NewActivityStore returns an empty activity store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{collection: NewCollection[domain.Activity]()}
}

// Add inserts an activity and restores descending createdAt order.
// Re-delivery of an id already present (command response plus realtime
// echo) leaves a single entry.
func (s *ActivityStore) Add(activity domain.Activity) bool {
	inserted := s.collection.Upsert(activity)
	s.resort()
	return inserted
}

// BulkReplace swaps the timeline for a freshly fetched one.
func (s *ActivityStore) BulkReplace(activities []domain.Activity) {
	s.collection.BulkReplace(activities)
	s.resort()
}

// Snapshot returns the timeline, newest first.
func (s *ActivityStore) Snapshot() []domain.Activity {
	return s.collection.Snapshot()
}

// ForLead returns the timeline entries belonging to one lead, newest first.
func (s *ActivityStore) ForLead(leadID int64) []domain.Activity {
	all := s.collection.Snapshot()
	matched := make([]domain.Activity, 0, len(all))
	for _, activity := range all {
		if activity.LeadID == leadID {
			matched = append(matched, activity)
		}
	}
	return matched
}

// Recent returns up to n of the newest entries.
func (s *ActivityStore) Recent(n int) []domain.Activity {
	all := s.collection.Snapshot()
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Len returns the number of entries.
func (s *ActivityStore) Len() int {
	return s.collection.Len()
}

func (s *ActivityStore) resort() {
	s.collection.mutate(func(items []domain.Activity) []domain.Activity {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
		return items
	})
}
