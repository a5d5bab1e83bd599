package webhook

// Payload is the envelope WhatsApp POSTs to the webhook endpoint.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string          `json:"messaging_product"`
	Metadata         Metadata        `json:"metadata"`
	Messages         []RawMessage    `json:"messages,omitempty"`
	Statuses         []Status        `json:"statuses,omitempty"`
	Reactions        []ReactionEvent `json:"reactions,omitempty"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// RawMessage is one inbound message as it appears in the envelope, before
// per-type content extraction.
type RawMessage struct {
	From        string            `json:"from"`
	ID          string            `json:"id"`
	Timestamp   string            `json:"timestamp"`
	Type        string            `json:"type"`
	Context     *MessageContext   `json:"context,omitempty"`
	Text        *TextContent      `json:"text,omitempty"`
	Image       *Media            `json:"image,omitempty"`
	Audio       *Media            `json:"audio,omitempty"`
	Video       *Media            `json:"video,omitempty"`
	Document    *Media            `json:"document,omitempty"`
	Sticker     *Media            `json:"sticker,omitempty"`
	Location    *LocationContent  `json:"location,omitempty"`
	Contacts    []ContactContent  `json:"contacts,omitempty"`
	Interactive *InteractiveReply `json:"interactive,omitempty"`
	Button      *ButtonContent    `json:"button,omitempty"`
	Reaction    *ReactionContent  `json:"reaction,omitempty"`
}

// MessageContext links an inbound message to the message it replies to.
type MessageContext struct {
	From string `json:"from,omitempty"`
	ID   string `json:"id"`
}

type TextContent struct {
	Body string `json:"body"`
}

// Media is an inbound media descriptor. Link is only present for media the
// platform exposes by URL; most inbound media carries an ID to download.
type Media struct {
	ID       string `json:"id,omitempty"`
	Link     string `json:"link,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	SHA256   string `json:"sha256,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type LocationContent struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// ContactContent is one shared contact card.
type ContactContent struct {
	Name   ContactName    `json:"name"`
	Phones []ContactPhone `json:"phones,omitempty"`
	Emails []ContactEmail `json:"emails,omitempty"`
}

type ContactName struct {
	FormattedName string `json:"formatted_name"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
}

type ContactPhone struct {
	Phone string `json:"phone"`
	Type  string `json:"type,omitempty"`
	WaID  string `json:"wa_id,omitempty"`
}

type ContactEmail struct {
	Email string `json:"email"`
	Type  string `json:"type,omitempty"`
}

// InteractiveReply is the user's answer to an interactive message.
type InteractiveReply struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
	ListReply   *ListReply   `json:"list_reply,omitempty"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ListReply struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ButtonContent is a press of a legacy template quick-reply button.
type ButtonContent struct {
	Payload string `json:"payload,omitempty"`
	Text    string `json:"text,omitempty"`
}

type ReactionContent struct {
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}
