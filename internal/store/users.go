package store

import "github.com/unionmaster/crm-console/internal/domain"

// UserStore owns the operator-account collection. Users have no realtime
// sync; only command responses mutate it.
type UserStore struct {
	*Collection[domain.User]
}

// NewUserStore returns an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{Collection: NewCollection[domain.User]()}
}
