package store

import "github.com/unionmaster/crm-console/internal/domain"

// NotificationStore owns the notification feed and maintains the unread
// count as the number of entries with isRead false.
type NotificationStore struct {
	collection *Collection[domain.Notification]
}

// NewNotificationStore returns an empty notification store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{collection: NewCollection[domain.Notification]()}
}

// Add inserts a notification at the front of the feed, deduplicating on id.
func (s *NotificationStore) Add(notification domain.Notification) bool {
	return s.collection.Upsert(notification)
}

// BulkReplace swaps the feed for a freshly fetched one.
func (s *NotificationStore) BulkReplace(notifications []domain.Notification) {
	s.collection.BulkReplace(notifications)
}

// MarkAllRead flips every entry to read. The unread count is zero
// immediately afterwards.
func (s *NotificationStore) MarkAllRead() {
	s.collection.mutate(func(items []domain.Notification) []domain.Notification {
		for i := range items {
			items[i].IsRead = true
		}
		return items
	})
}

// Unread counts the entries with isRead false. It is derived on read so it
// can never drift from the feed contents.
func (s *NotificationStore) Unread() int {
	unread := 0
	for _, notification := range s.collection.Snapshot() {
		if !notification.IsRead {
			unread++
		}
	}
	return unread
}

// Snapshot returns the feed in its current order.
func (s *NotificationStore) Snapshot() []domain.Notification {
	return s.collection.Snapshot()
}

// Len returns the number of entries.
func (s *NotificationStore) Len() int {
	return s.collection.Len()
}
