package whatsapp

import (
	"context"
	"net/http"

	"whatsapp-client/pkg/outbound"
	"whatsapp-client/pkg/webhook"
)

// MessageResponse is the messages endpoint's success body.
type MessageResponse struct {
	MessagingProduct string          `json:"messaging_product"`
	Contacts         []ContactResult `json:"contacts"`
	Messages         []MessageResult `json:"messages"`
}

// ContactResult maps the recipient as submitted to the resolved WhatsApp ID.
type ContactResult struct {
	Input string `json:"input"`
	WaID  string `json:"wa_id"`
}

type MessageResult struct {
	ID        string `json:"id"`
	Status    string `json:"status,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Send validates the intent, builds the wire body and posts it. Validation
// failures surface before any network call.
func (c *Client) Send(ctx context.Context, intent *outbound.Intent) (*MessageResponse, error) {
	if err := outbound.Validate(intent); err != nil {
		return nil, err
	}
	body, err := outbound.Build(intent)
	if err != nil {
		return nil, err
	}

	var resp MessageResponse
	if err := c.PhoneRequest(ctx, http.MethodPost, "messages", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, to, content string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{To: to, Content: content})
}

// SendTemplate sends a pre-approved template, optionally parameterized.
func (c *Client) SendTemplate(ctx context.Context, to, name string, language outbound.LanguageCode, components ...outbound.TemplateComponent) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To:       to,
		Template: &outbound.Template{Name: name, Language: language, Components: components},
	})
}

// SendImage sends an image by URL with an optional caption.
func (c *Client) SendImage(ctx context.Context, to, url, caption string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To:    to,
		Files: []outbound.FileAttachment{{Type: outbound.FileImage, URL: url, Caption: caption}},
	})
}

// SendDocument sends a document by URL. Filename is required.
func (c *Client) SendDocument(ctx context.Context, to, url, filename, caption string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To:    to,
		Files: []outbound.FileAttachment{{Type: outbound.FileDocument, URL: url, Filename: filename, Caption: caption}},
	})
}

// SendVideo sends a video by URL with an optional caption.
func (c *Client) SendVideo(ctx context.Context, to, url, caption string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To:    to,
		Files: []outbound.FileAttachment{{Type: outbound.FileVideo, URL: url, Caption: caption}},
	})
}

// SendAudio sends an audio clip by URL.
func (c *Client) SendAudio(ctx context.Context, to, url string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To:    to,
		Files: []outbound.FileAttachment{{Type: outbound.FileAudio, URL: url}},
	})
}

// SendSticker sends a sticker by URL or media ID.
func (c *Client) SendSticker(ctx context.Context, to, url string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To:    to,
		Files: []outbound.FileAttachment{{Type: outbound.FileSticker, URL: url}},
	})
}

// SendLocation sends a map pin.
func (c *Client) SendLocation(ctx context.Context, to string, latitude, longitude float64, name, address string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To: to,
		Components: []outbound.Component{&outbound.Location{
			Latitude:  latitude,
			Longitude: longitude,
			Name:      name,
			Address:   address,
		}},
	})
}

// SendContact shares a contact card.
func (c *Client) SendContact(ctx context.Context, to string, contact *outbound.Contact) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{To: to, Components: []outbound.Component{contact}})
}

// SendReaction reacts to a message with an emoji.
func (c *Client) SendReaction(ctx context.Context, to, messageID, emoji string) (*MessageResponse, error) {
	return c.Send(ctx, &outbound.Intent{
		To:       to,
		Reaction: &outbound.Reaction{MessageID: messageID, Emoji: emoji},
	})
}

// Reply sends an intent back to the sender of an inbound message, quoting
// it.
func (c *Client) Reply(ctx context.Context, msg *webhook.IncomingMessage, intent *outbound.Intent) (*MessageResponse, error) {
	intent.To = msg.From
	intent.Context = &outbound.Context{MessageID: msg.ID}
	return c.Send(ctx, intent)
}

// React reacts to an inbound message.
func (c *Client) React(ctx context.Context, msg *webhook.IncomingMessage, emoji string) (*MessageResponse, error) {
	return c.SendReaction(ctx, msg.From, msg.ID, emoji)
}

// MarkAsRead marks an inbound message as read.
func (c *Client) MarkAsRead(ctx context.Context, messageID string) error {
	body := map[string]any{
		"messaging_product": "whatsapp",
		"status":            "read",
		"message_id":        messageID,
	}
	return c.PhoneRequest(ctx, http.MethodPost, "messages", body, nil)
}
