package event

import "time"

type Type string

const (
	TypeNotification       Type = "notification"
	TypeReclamationCreated Type = "reclamation.created"
	TypeReclamationUpdated Type = "reclamation.updated"
	TypeEventCreated       Type = "event.created"
	TypeEventReminder      Type = "event.reminder"
	TypeCaisseTransaction  Type = "caisse.transaction"
	TypeSessionEnded       Type = "session.ended"
)

// Event is a single bus message. UserID scopes delivery: zero means
// broadcast, anything else is routed to that user only.
type Event struct {
	ID        string      `json:"id"`
	Type      Type        `json:"type"`
	UserID    uint        `json:"user_id,omitempty"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Bus fans events out to subscribers.
type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
