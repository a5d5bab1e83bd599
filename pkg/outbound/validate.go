package outbound

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf16"

	"whatsapp-client/pkg/waerrors"
)

var (
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	nonDigits    = regexp.MustCompile(`\D`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// CleanPhoneNumber normalizes a phone number for the Cloud API. Argentine
// mobile numbers carry an extra 9 after the country code that the API
// rejects, so a raw 549 prefix is rewritten to 54; every other input is
// stripped of non-digit characters.
func CleanPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "549") {
		return "54" + phone[3:]
	}
	return nonDigits.ReplaceAllString(phone, "")
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func isValidEmail(address string) bool {
	return emailPattern.MatchString(address)
}

// utf16Len mirrors the length check the platform applies to reaction
// emoji: one emoji is at most two UTF-16 code units.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// Validate checks the intent against the platform's constraints and
// normalizes the recipient number in place. It fails on the first
// violation. Populating several content fields is not an error; Build
// resolves the winner.
func Validate(intent *Intent) error {
	if intent.To == "" {
		return waerrors.New("recipient phone number is required", 0)
	}

	intent.To = CleanPhoneNumber(intent.To)
	if !digitsOnly.MatchString(intent.To) {
		return waerrors.New("phone number must contain only digits", 0)
	}

	hasContent := intent.Content != "" ||
		intent.Template != nil ||
		len(intent.Files) > 0 ||
		intent.Interactive != nil ||
		intent.Reaction != nil ||
		len(intent.Components) > 0 ||
		len(intent.Embeds) > 0

	if !hasContent {
		return waerrors.New("at least one content type is required (text, template, files, interactive, reaction, components, or embeds)", 0)
	}

	if intent.Template != nil {
		if err := validateTemplate(intent.Template); err != nil {
			return err
		}
	}

	for _, file := range intent.Files {
		if err := validateFile(file); err != nil {
			return err
		}
	}

	if r := intent.Reaction; r != nil {
		if r.MessageID == "" {
			return waerrors.New("message ID is required for reaction messages", 0)
		}
		if r.Emoji == "" {
			return waerrors.New("emoji is required for reaction messages", 0)
		}
		if utf16Len(r.Emoji) > 2 {
			return waerrors.New("cannot react with more than one emoji", 0)
		}
	}

	if intent.Interactive != nil {
		if err := validateInteractive(intent.Interactive); err != nil {
			return err
		}
	}

	for _, embed := range intent.Embeds {
		if embed.Body == "" {
			return waerrors.New("body is required for embed messages", 0)
		}
	}

	if intent.Components != nil {
		if err := validateComponents(intent.Components); err != nil {
			return err
		}
	}

	if intent.Context != nil && intent.Context.MessageID == "" {
		return waerrors.New("message ID is required in context for reply messages", 0)
	}

	return nil
}

// ValidateExclusive applies Validate plus the older client's restriction
// that free text and a template cannot be combined. The current resolution
// lets the template win and ignores the text; callers that relied on the
// stricter behavior can use this entry point.
func ValidateExclusive(intent *Intent) error {
	if intent.Content != "" && intent.Template != nil {
		return waerrors.New("cannot combine text content with a template message", 0)
	}
	return Validate(intent)
}

func validateTemplate(t *Template) error {
	if t.Name == "" {
		return waerrors.New("template name is required", 0)
	}
	if t.Language == "" {
		return waerrors.New("template language is required", 0)
	}
	if !supportedLanguages[t.Language] {
		return waerrors.New(fmt.Sprintf("invalid template language: %s. Allowed languages are: %s.", t.Language, supportedLanguageList()), 0)
	}
	for _, component := range t.Components {
		if err := validateTemplateComponent(component); err != nil {
			return err
		}
	}
	return nil
}

func validateTemplateComponent(c TemplateComponent) error {
	switch c.Type {
	case "header", "body", "button", "footer":
	default:
		return waerrors.New(fmt.Sprintf("invalid component type: %s", c.Type), 0)
	}

	if c.Type == "button" && c.SubType != "" {
		switch c.SubType {
		case "quick_reply", "url", "CATALOG":
		default:
			return waerrors.New(fmt.Sprintf("invalid button sub_type: %s", c.SubType), 0)
		}
	}

	if len(c.Parameters) == 0 {
		return waerrors.New(fmt.Sprintf("parameters are required for %s component", c.Type), 0)
	}

	for _, param := range c.Parameters {
		if err := validateTemplateParameter(c, param); err != nil {
			return err
		}
	}
	return nil
}

func validateTemplateParameter(c TemplateComponent, p TemplateParameter) error {
	switch p.Type {
	case "":
		return waerrors.New("parameter type is required", 0)
	case "text":
		if p.Text == "" {
			return waerrors.New("text value is required for text parameter", 0)
		}
	case "currency":
		if p.Currency == nil {
			return waerrors.New("currency object is required for currency parameter", 0)
		}
		if p.Currency.FallbackValue == "" || p.Currency.Code == "" {
			return waerrors.New("currency parameter must include fallback_value, code, and amount_1000", 0)
		}
	case "date_time":
		if p.DateTime == nil || p.DateTime.FallbackValue == "" {
			return waerrors.New("date time parameter must include fallback_value", 0)
		}
	case "image":
		if p.Image == nil || p.Image.Link == "" {
			return waerrors.New("image parameter must include a link", 0)
		}
		if !isValidURL(p.Image.Link) {
			return waerrors.New(fmt.Sprintf("invalid URL format for image: %s", p.Image.Link), 0)
		}
	case "document":
		if p.Document == nil || p.Document.Link == "" {
			return waerrors.New("document parameter must include a link", 0)
		}
		if !isValidURL(p.Document.Link) {
			return waerrors.New(fmt.Sprintf("invalid URL format for document: %s", p.Document.Link), 0)
		}
	case "video":
		if p.Video == nil || p.Video.Link == "" {
			return waerrors.New("video parameter must include a link", 0)
		}
		if !isValidURL(p.Video.Link) {
			return waerrors.New(fmt.Sprintf("invalid URL format for video: %s", p.Video.Link), 0)
		}
	case "payload":
		if p.Payload == "" {
			return waerrors.New("payload value is required for payload parameter", 0)
		}
	case "action":
		if p.Action == nil {
			return waerrors.New("action object is required for action parameter", 0)
		}
		if c.SubType == "CATALOG" && p.Action.ThumbnailProductRetailerID == "" {
			return waerrors.New("thumbnail_product_retailer_id is required for CATALOG button", 0)
		}
	default:
		return waerrors.New(fmt.Sprintf("unsupported parameter type: %s", p.Type), 0)
	}
	return nil
}

func validateFile(file FileAttachment) error {
	if file.Type == "" {
		return waerrors.New("file type is required", 0)
	}
	switch file.Type {
	case FileImage, FileDocument, FileAudio, FileVideo, FileSticker:
	default:
		return waerrors.New(fmt.Sprintf("invalid file type: %s. Allowed types are: image, document, audio, video, sticker.", file.Type), 0)
	}
	if file.URL == "" && file.ID == "" {
		return waerrors.New("either file URL or ID must be provided", 0)
	}
	if file.URL != "" && !isValidURL(file.URL) {
		return waerrors.New(fmt.Sprintf("invalid URL format: %s", file.URL), 0)
	}
	if file.Type == FileDocument && file.Filename == "" {
		return waerrors.New("filename is required for document files", 0)
	}
	return nil
}

func validateInteractive(in *Interactive) error {
	if in.Type == "" {
		return waerrors.New("interactive type is required", 0)
	}
	switch in.Type {
	case "button", "list", "product", "product_list", "cta_url", "text":
	default:
		return waerrors.New(fmt.Sprintf("invalid interactive type: %s. Allowed types are: button, list, product, product_list, cta_url, text.", in.Type), 0)
	}

	if in.Body.Text == "" {
		return waerrors.New("body text is required for interactive messages", 0)
	}

	if h := in.Header; h != nil {
		if h.Type == "" {
			return waerrors.New("header type is required", 0)
		}
		switch h.Type {
		case "text":
			if h.Text == "" {
				return waerrors.New("text is required for text header", 0)
			}
		case "image":
			if h.Image == nil || (h.Image.Link == "" && h.Image.ID == "") {
				return waerrors.New("image link or ID is required for image header", 0)
			}
		case "video":
			if h.Video == nil || (h.Video.Link == "" && h.Video.ID == "") {
				return waerrors.New("video link or ID is required for video header", 0)
			}
		case "document":
			if h.Document == nil || (h.Document.Link == "" && h.Document.ID == "") {
				return waerrors.New("document link or ID is required for document header", 0)
			}
		default:
			return waerrors.New(fmt.Sprintf("invalid header type: %s. Allowed types are: text, image, video, document.", h.Type), 0)
		}
	}

	if a := in.Action; a != nil {
		if a.Buttons != nil {
			if len(a.Buttons) == 0 {
				return waerrors.New("at least one button is required", 0)
			}
			if len(a.Buttons) > 3 {
				return waerrors.New("maximum 3 buttons are allowed", 0)
			}
			for _, button := range a.Buttons {
				if button.Type == "" {
					return waerrors.New("button type is required", 0)
				}
				if button.Type == "reply" && (button.Reply == nil || button.Reply.ID == "" || button.Reply.Title == "") {
					return waerrors.New("reply ID and title are required for reply buttons", 0)
				}
				if button.Type == "url" {
					if button.URL == "" || button.Text == "" {
						return waerrors.New("URL and text are required for URL buttons", 0)
					}
					if !isValidURL(button.URL) {
						return waerrors.New(fmt.Sprintf("invalid URL format: %s", button.URL), 0)
					}
				}
			}
		}
		if a.Sections != nil {
			if len(a.Sections) == 0 {
				return waerrors.New("at least one section is required", 0)
			}
			for _, section := range a.Sections {
				if section.Title == "" {
					return waerrors.New("section title is required", 0)
				}
				if len(section.Rows) == 0 {
					return waerrors.New("at least one row is required per section", 0)
				}
				for _, row := range section.Rows {
					if row.ID == "" || row.Title == "" {
						return waerrors.New("row ID and title are required", 0)
					}
				}
			}
		}
	}
	return nil
}

func validateComponents(components []Component) error {
	if len(components) == 0 {
		return waerrors.New("at least one component is required", 0)
	}
	for _, component := range components {
		switch c := component.(type) {
		case *Location:
			if c.Latitude < -90 || c.Latitude > 90 {
				return waerrors.New("latitude must be between -90 and 90 degrees", 0)
			}
			if c.Longitude < -180 || c.Longitude > 180 {
				return waerrors.New("longitude must be between -180 and 180 degrees", 0)
			}
		case *Contact:
			if err := validateContact(c); err != nil {
				return err
			}
		case *Embed:
			if c.Body == "" {
				return waerrors.New("body is required in the embed", 0)
			}
			if len(c.Title) > 60 {
				return waerrors.New("embed title must be 60 characters or less", 0)
			}
			if len(c.Body) > 1000 {
				return waerrors.New("embed body must be 1000 characters or less", 0)
			}
			if len(c.Footer) > 60 {
				return waerrors.New("embed footer must be 60 characters or less", 0)
			}
		case *Button:
			if c.Type == "" {
				return waerrors.New("button type is required", 0)
			}
			if c.Type == "reply" {
				if c.Reply == nil || c.Reply.ID == "" || c.Reply.Title == "" {
					return waerrors.New("reply ID and title are required for reply buttons", 0)
				}
				if c.Text != "" {
					return waerrors.New("text is not allowed for reply buttons", 0)
				}
			}
		case *List:
			if err := validateList(c); err != nil {
				return err
			}
		default:
			return waerrors.New("unknown component type", 0)
		}
	}
	return nil
}

func validateContact(c *Contact) error {
	if c.FirstName == "" || len(c.Phones) == 0 {
		return waerrors.New("first name and at least one phone number are required", 0)
	}
	for _, phone := range c.Phones {
		if phone.Number == "" {
			return waerrors.New("phone number is required for each phone entry", 0)
		}
		if !digitsOnly.MatchString(nonDigits.ReplaceAllString(phone.Number, "")) {
			return waerrors.New(fmt.Sprintf("invalid phone number format: %s", phone.Number), 0)
		}
	}
	for _, email := range c.Emails {
		if email.Address == "" || !isValidEmail(email.Address) {
			return waerrors.New(fmt.Sprintf("invalid email format: %s", email.Address), 0)
		}
	}
	for _, site := range c.URLs {
		if site.URL == "" || !isValidURL(site.URL) {
			return waerrors.New(fmt.Sprintf("invalid URL format: %s", site.URL), 0)
		}
	}
	return nil
}

func validateList(l *List) error {
	if l.Title == "" {
		return waerrors.New("list title is required", 0)
	}
	if len(l.Rows) == 0 {
		return waerrors.New("at least one row is required for the list", 0)
	}
	if l.ButtonText == "" {
		return waerrors.New("button text is required for the list", 0)
	}
	if len(l.ButtonText) > 20 {
		return waerrors.New("button text must be 20 characters or less", 0)
	}
	if len(l.Title) > 24 {
		return waerrors.New("list title must be 24 characters or less", 0)
	}
	for _, row := range l.Rows {
		if row.ID == "" || row.Title == "" {
			return waerrors.New("row ID and title are required for each row", 0)
		}
	}
	return nil
}
