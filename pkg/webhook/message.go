package webhook

// IncomingMessage is an inbound message with its type-specific content
// extracted. Only the field matching Type is set; an unrecognized type
// leaves every content field absent rather than failing.
type IncomingMessage struct {
	ID        string
	From      string
	Timestamp string
	Type      string
	Context   *MessageContext

	Text        string
	Image       *Media
	Audio       *Media
	Video       *Media
	Document    *Media
	Sticker     *Media
	Location    *LocationContent
	Contacts    []ContactContent
	Interactive *InteractiveReply
	Button      *ButtonContent
	Reaction    *ReactionContent
}

// IsReply reports whether the message quotes another message.
func (m *IncomingMessage) IsReply() bool {
	return m.Context != nil && m.Context.ID != ""
}

func newIncomingMessage(raw RawMessage) *IncomingMessage {
	msg := &IncomingMessage{
		ID:        raw.ID,
		From:      raw.From,
		Timestamp: raw.Timestamp,
		Type:      raw.Type,
		Context:   raw.Context,
	}

	switch raw.Type {
	case "text":
		if raw.Text != nil {
			msg.Text = raw.Text.Body
		}
	case "image":
		msg.Image = raw.Image
	case "audio":
		msg.Audio = raw.Audio
	case "video":
		msg.Video = raw.Video
	case "document":
		msg.Document = raw.Document
	case "sticker":
		msg.Sticker = raw.Sticker
	case "location":
		msg.Location = raw.Location
	case "contacts":
		msg.Contacts = raw.Contacts
	case "interactive":
		msg.Interactive = raw.Interactive
	case "button":
		msg.Button = raw.Button
	case "reaction":
		msg.Reaction = raw.Reaction
	}
	return msg
}
