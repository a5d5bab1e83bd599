package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// accountObject is the envelope discriminator for Business Platform
// callbacks; payloads tagged otherwise are ignored.
const accountObject = "whatsapp_business_account"

// Handler serves the webhook endpoint: the GET verification handshake and
// the POST event branch. Events are dispatched synchronously to
// subscribers after the HTTP acknowledgement has been written, so slow
// subscribers cannot make the platform consider the delivery failed.
type Handler struct {
	verifyToken string
	log         zerolog.Logger
	registry    *registry
}

func NewHandler(verifyToken string) *Handler {
	return &Handler{
		verifyToken: verifyToken,
		log:         zerolog.Nop(),
		registry:    newRegistry(),
	}
}

// WithLogger attaches a logger and returns the handler for chaining.
func (h *Handler) WithLogger(log zerolog.Logger) *Handler {
	h.log = log
	return h
}

// Subscribe registers fn for an event type. Delivery is synchronous and in
// subscription order; the returned handle removes the registration.
func (h *Handler) Subscribe(event EventType, fn func(Event)) Subscription {
	return h.registry.subscribe(event, fn)
}

// Unsubscribe removes a previously registered handler.
func (h *Handler) Unsubscribe(sub Subscription) {
	h.registry.unsubscribe(sub)
}

// Routes registers the webhook verification and event endpoints.
func (h *Handler) Routes(r gin.IRoutes) {
	r.GET("/webhook", h.Verify)
	r.POST("/webhook", h.HandleEvent)
}

// Verify answers the platform's registration handshake: echo the challenge
// when the mode is "subscribe" and the token matches, refuse otherwise.
func (h *Handler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken && challenge != "" {
		h.log.Info().Msg("webhook verified")
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "Verification Failed")
}

// HandleEvent acknowledges an event delivery and dispatches its contents.
// The 200 is written before processing; a payload that is not valid JSON
// gets a 400 and dispatches nothing.
func (h *Handler) HandleEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.log.Warn().Err(err).Msg("discarding malformed webhook body")
		c.String(http.StatusBadRequest, "Bad Request")
		return
	}

	c.String(http.StatusOK, "EVENT_RECEIVED")
	h.processEvent(&payload)
}

// processEvent walks the envelope and publishes typed events. Payloads for
// a different object tag are dropped silently: foreign traffic is not an
// error.
func (h *Handler) processEvent(payload *Payload) {
	if payload.Object != accountObject {
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			value := change.Value

			for _, raw := range value.Messages {
				msg := newIncomingMessage(raw)
				h.publish(Event{Type: EventMessageReceived, Message: msg})
				if raw.Type == "interactive" || raw.Type == "button" {
					h.publish(Event{Type: EventInteractionCreate, Message: msg})
				}
			}

			for _, status := range value.Statuses {
				status := status
				switch status.Status {
				case "delivered":
					h.publish(Event{Type: EventMessageDelivered, Status: &status})
				case "read":
					h.publish(Event{Type: EventMessageRead, Status: &status})
				default:
					h.publish(Event{Type: EventStatusUpdated, Status: &status})
				}
			}

			for _, reaction := range value.Reactions {
				reaction := reaction
				h.publish(Event{Type: EventMessageReaction, Reaction: &reaction})
			}
		}
	}
}

// publish delivers an event to every subscriber in order. A panicking
// subscriber is logged and does not stop delivery to the rest.
func (h *Handler) publish(event Event) {
	for _, sub := range h.registry.snapshot(event.Type) {
		h.invoke(sub, event)
	}
}

func (h *Handler) invoke(sub subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().
				Interface("panic", r).
				Str("event", string(event.Type)).
				Msg("webhook subscriber panicked")
		}
	}()
	sub.fn(event)
}
