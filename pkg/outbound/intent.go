// Package outbound turns caller intents into the JSON bodies the Cloud API
// messages endpoint accepts, validating them against the platform's
// constraints first.
package outbound

import (
	"sort"
	"strings"
)

// LanguageCode identifies a template language supported by the platform.
// https://developers.facebook.com/docs/whatsapp/api/messages/templates#supported-languages
type LanguageCode string

const (
	LangAfrikaans        LanguageCode = "af"
	LangAlbanian         LanguageCode = "sq"
	LangArabic           LanguageCode = "ar"
	LangSpanish          LanguageCode = "es"
	LangSpanishArgentina LanguageCode = "es_AR"
	LangEnglishUS        LanguageCode = "en_US"
)

var supportedLanguages = map[LanguageCode]bool{
	LangAfrikaans:        true,
	LangAlbanian:         true,
	LangArabic:           true,
	LangSpanish:          true,
	LangSpanishArgentina: true,
	LangEnglishUS:        true,
}

func supportedLanguageList() string {
	codes := make([]string, 0, len(supportedLanguages))
	for code := range supportedLanguages {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	return strings.Join(codes, ", ")
}

// FileType is the attachment kind of a FileAttachment.
type FileType string

const (
	FileImage    FileType = "image"
	FileDocument FileType = "document"
	FileAudio    FileType = "audio"
	FileVideo    FileType = "video"
	FileSticker  FileType = "sticker"
)

// FileAttachment references media either by uploaded media ID or by URL.
// Documents additionally require a filename.
type FileAttachment struct {
	Type     FileType
	ID       string
	URL      string
	Caption  string
	Filename string
}

// Template references a pre-approved message template by name and language.
type Template struct {
	Name       string
	Language   LanguageCode
	Components []TemplateComponent
}

// TemplateComponent fills one slot of a template: header, body, button or
// footer. Buttons carry a sub type and positional index.
type TemplateComponent struct {
	Type       string              `json:"type"`
	SubType    string              `json:"sub_type,omitempty"`
	Index      string              `json:"index,omitempty"`
	Parameters []TemplateParameter `json:"parameters"`
}

// TemplateParameter is a single typed value inside a template component.
type TemplateParameter struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Currency *Currency       `json:"currency,omitempty"`
	DateTime *DateTime       `json:"date_time,omitempty"`
	Image    *MediaRef       `json:"image,omitempty"`
	Document *MediaRef       `json:"document,omitempty"`
	Video    *MediaRef       `json:"video,omitempty"`
	Payload  string          `json:"payload,omitempty"`
	Action   *TemplateAction `json:"action,omitempty"`
}

// Currency is a localized money value. Amount1000 is the amount multiplied
// by 1000.
type Currency struct {
	FallbackValue string `json:"fallback_value"`
	Code          string `json:"code"`
	Amount1000    int    `json:"amount_1000"`
}

// DateTime is a localized date with a plain-text fallback.
type DateTime struct {
	FallbackValue string `json:"fallback_value"`
}

// MediaRef points to media by link or uploaded ID.
type MediaRef struct {
	Link string `json:"link,omitempty"`
	ID   string `json:"id,omitempty"`
}

// TemplateAction parameterizes a CATALOG button.
type TemplateAction struct {
	ThumbnailProductRetailerID string `json:"thumbnail_product_retailer_id,omitempty"`
}

// Interactive describes a menu message: buttons, a list, a product or a
// call-to-action URL.
type Interactive struct {
	Type   string             `json:"type"`
	Header *InteractiveHeader `json:"header,omitempty"`
	Body   InteractiveBody    `json:"body"`
	Footer *InteractiveFooter `json:"footer,omitempty"`
	Action *InteractiveAction `json:"action,omitempty"`
}

// InteractiveHeader is the optional top slot of an interactive message,
// either text or a media reference matching Type.
type InteractiveHeader struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	Image    *MediaRef `json:"image,omitempty"`
	Video    *MediaRef `json:"video,omitempty"`
	Document *MediaRef `json:"document,omitempty"`
}

type InteractiveBody struct {
	Text string `json:"text"`
}

type InteractiveFooter struct {
	Text string `json:"text"`
}

// InteractiveAction is the action block; which fields apply depends on the
// interactive type.
type InteractiveAction struct {
	Button            string               `json:"button,omitempty"`
	Buttons           []InteractiveButton  `json:"buttons,omitempty"`
	Sections          []InteractiveSection `json:"sections,omitempty"`
	CatalogID         string               `json:"catalog_id,omitempty"`
	ProductRetailerID string               `json:"product_retailer_id,omitempty"`
	Name              string               `json:"name,omitempty"`
	Parameters        *CTAParameters       `json:"parameters,omitempty"`
}

// InteractiveButton is one button inside an interactive action.
type InteractiveButton struct {
	Type  string    `json:"type"`
	Reply *ReplyRef `json:"reply,omitempty"`
	URL   string    `json:"url,omitempty"`
	Text  string    `json:"text,omitempty"`
}

type ReplyRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// InteractiveSection is a titled group of rows in a list action.
type InteractiveSection struct {
	Title string    `json:"title,omitempty"`
	Rows  []WireRow `json:"rows,omitempty"`
}

type WireRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CTAParameters carries the display text and target of a cta_url action.
type CTAParameters struct {
	DisplayText string `json:"display_text"`
	URL         string `json:"url"`
}

// Reaction references an existing message with an emoji. An empty emoji on
// the wire removes a reaction, but as an outbound intent it is required.
type Reaction struct {
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

// Context marks the message as a reply to another message.
type Context struct {
	MessageID string `json:"message_id"`
}

// Intent is the caller-supplied description of a message to send. To is
// required and at least one content field must be populated; when several
// are, Build resolves the winner in a fixed priority order (template, files,
// interactive, reaction, text, embeds, components).
type Intent struct {
	To          string
	Content     string
	Template    *Template
	Files       []FileAttachment
	Interactive *Interactive
	Reaction    *Reaction
	Components  []Component
	Embeds      []Embed
	Context     *Context
}
