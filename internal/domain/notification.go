package domain

import "time"

// Notification is a broadcast message pushed by the backend. Notifications
// are never deleted; they only flip to read.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key implements store.Keyed.
func (n Notification) Key() int64 { return n.ID }
