package services

// Broadcaster pushes events to connected clients. Implemented by the
// websocket hub; a no-op implementation is fine for tests.
type Broadcaster interface {
	// PushToUser delivers a named event to every connection in the
	// user's room.
	PushToUser(userID uint, eventName string, payload interface{})
}

// NopBroadcaster drops everything.
type NopBroadcaster struct{}

func (NopBroadcaster) PushToUser(uint, string, interface{}) {}
