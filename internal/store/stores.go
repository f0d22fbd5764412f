package store

// Stores bundles the domain stores for one authenticated session. Each
// store exclusively owns its collection; views read snapshots only.
type Stores struct {
	Leads         *LeadStore
	Users         *UserStore
	Activities    *ActivityStore
	Notifications *NotificationStore
}

// NewStores returns an empty store set.
func NewStores() *Stores {
	return &Stores{
		Leads:         NewLeadStore(),
		Users:         NewUserStore(),
		Activities:    NewActivityStore(),
		Notifications: NewNotificationStore(),
	}
}
