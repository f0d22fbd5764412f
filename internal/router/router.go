package router

import (
	"encoding/json"
	"sync"

	"github.com/unionmaster/crm-console/internal/domain"
	"github.com/unionmaster/crm-console/internal/realtime"
	"github.com/unionmaster/crm-console/internal/store"
	"go.uber.org/zap"
)

// Inbound event names emitted by the backend.
const (
	EventLeadCreated         = "lead_created"
	EventLeadUpdated         = "lead_updated"
	EventLeadDeleted         = "lead_deleted"
	EventActivityAdded       = "activity_added"
	EventNotificationCreated = "notification_created"
)

// Outbound event names emitted by this client.
const (
	EventJoinLead  = "join_lead"
	EventLeaveLead = "leave_lead"
)

// Router subscribes the domain stores to the realtime channel. It applies
// inbound events through the same store primitives the command path uses,
// so state converges no matter which path delivers a change first.
type Router struct {
	channel *realtime.Channel
	stores  *store.Stores
	logger  *zap.Logger
	attach  sync.Once
}

// New constructs a router over an open channel and the session's stores.
func New(channel *realtime.Channel, stores *store.Stores, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{channel: channel, stores: stores, logger: logger}
}

// AttachOnce subscribes exactly one handler per inbound event kind.
// Repeated calls are no-ops, so a single delivered event can never be
// applied twice through double subscription.
func (r *Router) AttachOnce() {
	r.attach.Do(func() {
		r.channel.On(realtime.EventConnect, func(json.RawMessage) {
			r.logger.Info("realtime feed attached")
		})
		r.channel.On(realtime.EventDisconnect, func(json.RawMessage) {
			r.logger.Warn("realtime feed lost")
		})

		r.channel.On(EventLeadCreated, r.handleLeadCreated)
		r.channel.On(EventLeadUpdated, r.handleLeadUpdated)
		r.channel.On(EventLeadDeleted, r.handleLeadDeleted)
		r.channel.On(EventActivityAdded, r.handleActivityAdded)
		r.channel.On(EventNotificationCreated, r.handleNotificationCreated)

		r.logger.Debug("realtime handlers attached")
	})
}

func (r *Router) handleLeadCreated(data json.RawMessage) {
	var lead domain.Lead
	if !r.decodeEntity(EventLeadCreated, data, "lead", &lead) || lead.ID == 0 {
		return
	}
	inserted := r.stores.Leads.Upsert(lead)
	recordEvent(EventLeadCreated, inserted)
	if !inserted {
		// Echo of a create this client already applied from its own
		// command response.
		r.logger.Debug("duplicate lead_created ignored", zap.Int64("lead_id", lead.ID))
	}
}

func (r *Router) handleLeadUpdated(data json.RawMessage) {
	var lead domain.Lead
	if !r.decodeEntity(EventLeadUpdated, data, "lead", &lead) || lead.ID == 0 {
		return
	}
	applied := r.stores.Leads.Replace(lead)
	recordEvent(EventLeadUpdated, applied)
}

func (r *Router) handleLeadDeleted(data json.RawMessage) {
	id, ok := decodeID(data)
	if !ok {
		r.logger.Debug("unusable lead_deleted payload ignored")
		recordEvent(EventLeadDeleted, false)
		return
	}
	removed := r.stores.Leads.Remove(id)
	recordEvent(EventLeadDeleted, removed)
}

func (r *Router) handleActivityAdded(data json.RawMessage) {
	var activity domain.Activity
	if !r.decodeEntity(EventActivityAdded, data, "activity", &activity) || activity.ID == 0 {
		return
	}
	inserted := r.stores.Activities.Add(activity)
	recordEvent(EventActivityAdded, inserted)
}

func (r *Router) handleNotificationCreated(data json.RawMessage) {
	var notification domain.Notification
	if !r.decodeEntity(EventNotificationCreated, data, "notification", &notification) || notification.ID == 0 {
		return
	}
	inserted := r.stores.Notifications.Add(notification)
	recordEvent(EventNotificationCreated, inserted)
}

// decodeEntity accepts both the wrapped ({"lead": {…}}) and bare ({…})
// payload shapes. The emitting side is not this client, so malformed frames
// are dropped rather than propagated.
func (r *Router) decodeEntity(event string, data json.RawMessage, key string, out any) bool {
	if len(data) == 0 {
		recordEvent(event, false)
		return false
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err == nil {
		if inner, ok := wrapper[key]; ok {
			if err := json.Unmarshal(inner, out); err == nil {
				return true
			}
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		r.logger.Debug("unusable realtime payload ignored", zap.String("event", event))
		recordEvent(event, false)
		return false
	}
	return true
}

// decodeID accepts both {"id": 5} and a bare 5.
func decodeID(data json.RawMessage) (int64, bool) {
	var wrapped struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.ID != 0 {
		return wrapped.ID, true
	}

	var bare int64
	if err := json.Unmarshal(data, &bare); err == nil && bare != 0 {
		return bare, true
	}
	return 0, false
}
