// Package webhook receives the platform's push callbacks: it serves the
// registration handshake, parses event payloads and fans typed events out
// to subscribers.
package webhook

// EventType identifies a webhook event emitted to subscribers.
type EventType string

const (
	EventMessageReceived  EventType = "message.received"
	EventMessageDelivered EventType = "message.delivered"
	EventMessageRead      EventType = "message.read"
	EventMessageReaction  EventType = "message.reaction"
	EventStatusUpdated    EventType = "status.updated"
	// EventInteractionCreate fires alongside EventMessageReceived for
	// inbound interactive and button messages, so collectors can wait on
	// menu replies specifically.
	EventInteractionCreate EventType = "interaction.create"
)

// Event is the payload handed to subscribers. Exactly one of the content
// fields is set, matching Type.
type Event struct {
	Type     EventType
	Message  *IncomingMessage
	Status   *Status
	Reaction *ReactionEvent
}

// Status is a delivery status entry from the platform.
type Status struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// ReactionEvent is an emoji reaction to a previously sent message.
type ReactionEvent struct {
	MessageID string `json:"message_id"`
	From      string `json:"from"`
	Emoji     string `json:"emoji"`
	Timestamp string `json:"timestamp"`
}
