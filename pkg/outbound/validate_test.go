package outbound

import (
	"strings"
	"testing"
)

func assertValidationError(t *testing.T, intent *Intent, want string) {
	t.Helper()
	err := Validate(intent)
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want+" (code 0)" {
		t.Fatalf("unexpected error: %q", err.Error())
	}
}

func TestValidateRequiresRecipient(t *testing.T) {
	assertValidationError(t, &Intent{Content: "hello"}, "recipient phone number is required")
}

func TestValidateRequiresContent(t *testing.T) {
	assertValidationError(t, &Intent{To: "14155550100"},
		"at least one content type is required (text, template, files, interactive, reaction, components, or embeds)")
}

func TestCleanPhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5491123456789", "541123456789"},
		{"+1 (415) 555-0100", "14155550100"},
		{"54 11 2345 6789", "541123456789"},
		{"14155550100", "14155550100"},
	}
	for _, c := range cases {
		if got := CleanPhoneNumber(c.in); got != c.want {
			t.Fatalf("CleanPhoneNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateNormalizesRecipient(t *testing.T) {
	intent := &Intent{To: "+1 (415) 555-0100", Content: "hello"}
	if err := Validate(intent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.To != "14155550100" {
		t.Fatalf("recipient not normalized: %q", intent.To)
	}
}

func TestValidateRejectsNonNumericRecipient(t *testing.T) {
	// The Argentine prefix rewrite skips the non-digit strip, so junk after
	// the prefix must still be caught.
	assertValidationError(t, &Intent{To: "549-phone", Content: "hi"},
		"phone number must contain only digits")
}

func TestValidateAllowsTextWithTemplate(t *testing.T) {
	intent := &Intent{
		To:       "14155550100",
		Content:  "ignored",
		Template: &Template{Name: "order_update", Language: LangEnglishUS},
	}
	if err := Validate(intent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateExclusiveRejectsTextWithTemplate(t *testing.T) {
	intent := &Intent{
		To:       "14155550100",
		Content:  "hello",
		Template: &Template{Name: "order_update", Language: LangEnglishUS},
	}
	err := ValidateExclusive(intent)
	if err == nil || !strings.Contains(err.Error(), "cannot combine text content with a template message") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTemplateLanguage(t *testing.T) {
	intent := &Intent{
		To:       "14155550100",
		Template: &Template{Name: "order_update", Language: "xx"},
	}
	err := Validate(intent)
	if err == nil {
		t.Fatal("expected error for unsupported language")
	}
	want := "invalid template language: xx. Allowed languages are: af, ar, en_US, es, es_AR, sq."
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("unexpected error: %q", err.Error())
	}
}

func TestValidateTemplateComponents(t *testing.T) {
	base := func(c TemplateComponent) *Intent {
		return &Intent{
			To:       "14155550100",
			Template: &Template{Name: "order_update", Language: LangEnglishUS, Components: []TemplateComponent{c}},
		}
	}

	assertValidationError(t, base(TemplateComponent{Type: "banner"}), "invalid component type: banner")
	assertValidationError(t, base(TemplateComponent{Type: "body"}), "parameters are required for body component")
	assertValidationError(t,
		base(TemplateComponent{Type: "button", SubType: "flow", Parameters: []TemplateParameter{{Type: "payload", Payload: "x"}}}),
		"invalid button sub_type: flow")
	assertValidationError(t,
		base(TemplateComponent{Type: "body", Parameters: []TemplateParameter{{Type: "text"}}}),
		"text value is required for text parameter")
	assertValidationError(t,
		base(TemplateComponent{Type: "body", Parameters: []TemplateParameter{{Type: "currency", Currency: &Currency{Code: "USD"}}}}),
		"currency parameter must include fallback_value, code, and amount_1000")
	assertValidationError(t,
		base(TemplateComponent{Type: "header", Parameters: []TemplateParameter{{Type: "image", Image: &MediaRef{Link: "not a url"}}}}),
		"invalid URL format for image: not a url")
	assertValidationError(t,
		base(TemplateComponent{Type: "button", SubType: "CATALOG", Parameters: []TemplateParameter{{Type: "action", Action: &TemplateAction{}}}}),
		"thumbnail_product_retailer_id is required for CATALOG button")

	ok := base(TemplateComponent{Type: "body", Parameters: []TemplateParameter{
		{Type: "text", Text: "John"},
		{Type: "currency", Currency: &Currency{FallbackValue: "$10", Code: "USD", Amount1000: 10000}},
		{Type: "date_time", DateTime: &DateTime{FallbackValue: "Feb 25, 2026"}},
	}})
	if err := Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateFiles(t *testing.T) {
	base := func(f FileAttachment) *Intent {
		return &Intent{To: "14155550100", Files: []FileAttachment{f}}
	}

	assertValidationError(t, base(FileAttachment{URL: "https://example.com/a.png"}), "file type is required")
	assertValidationError(t, base(FileAttachment{Type: "gif", URL: "https://example.com/a.gif"}),
		"invalid file type: gif. Allowed types are: image, document, audio, video, sticker.")
	assertValidationError(t, base(FileAttachment{Type: FileImage}), "either file URL or ID must be provided")
	assertValidationError(t, base(FileAttachment{Type: FileImage, URL: "not a url"}), "invalid URL format: not a url")
	assertValidationError(t, base(FileAttachment{Type: FileDocument, URL: "https://example.com/a.pdf"}),
		"filename is required for document files")

	if err := Validate(base(FileAttachment{Type: FileImage, ID: "media-123"})); err != nil {
		t.Fatalf("unexpected error for media ID attachment: %v", err)
	}
}

func TestValidateReaction(t *testing.T) {
	base := func(r Reaction) *Intent {
		return &Intent{To: "14155550100", Reaction: &r}
	}

	assertValidationError(t, base(Reaction{Emoji: "\U0001F44D"}), "message ID is required for reaction messages")
	assertValidationError(t, base(Reaction{MessageID: "wamid.X"}), "emoji is required for reaction messages")
	assertValidationError(t, base(Reaction{MessageID: "wamid.X", Emoji: "\U0001F44D\U0001F44D"}),
		"cannot react with more than one emoji")

	if err := Validate(base(Reaction{MessageID: "wamid.X", Emoji: "\U0001F44D"})); err != nil {
		t.Fatalf("unexpected error for single emoji: %v", err)
	}
}

func TestValidateLocationBounds(t *testing.T) {
	base := func(lat, lng float64) *Intent {
		return &Intent{To: "14155550100", Components: []Component{&Location{Latitude: lat, Longitude: lng}}}
	}

	for _, c := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		if err := Validate(base(c[0], c[1])); err != nil {
			t.Fatalf("unexpected error at boundary (%v, %v): %v", c[0], c[1], err)
		}
	}
	assertValidationError(t, base(90.1, 0), "latitude must be between -90 and 90 degrees")
	assertValidationError(t, base(0, -180.1), "longitude must be between -180 and 180 degrees")
}

func TestValidateEmptyComponentSlice(t *testing.T) {
	assertValidationError(t, &Intent{To: "14155550100", Content: "hi", Components: []Component{}},
		"at least one component is required")
}

func TestValidateEmbeds(t *testing.T) {
	assertValidationError(t, &Intent{To: "14155550100", Embeds: []Embed{{Title: "no body"}}},
		"body is required for embed messages")

	long := strings.Repeat("x", 61)
	assertValidationError(t,
		&Intent{To: "14155550100", Content: "hi", Components: []Component{&Embed{Title: long, Body: "b"}}},
		"embed title must be 60 characters or less")
	assertValidationError(t,
		&Intent{To: "14155550100", Content: "hi", Components: []Component{&Embed{Body: strings.Repeat("x", 1001)}}},
		"embed body must be 1000 characters or less")
}

func TestValidateContact(t *testing.T) {
	base := func(c *Contact) *Intent {
		return &Intent{To: "14155550100", Components: []Component{c}}
	}

	assertValidationError(t, base(&Contact{FirstName: "Ana"}),
		"first name and at least one phone number are required")
	assertValidationError(t,
		base((&Contact{FirstName: "Ana"}).AddPhone(Phone{Number: "14155550100"}).AddEmail(Email{Address: "not-an-email"})),
		"invalid email format: not-an-email")
	assertValidationError(t,
		base((&Contact{FirstName: "Ana"}).AddPhone(Phone{Number: "14155550100"}).AddURL(Website{URL: "nope"})),
		"invalid URL format: nope")

	ok := (&Contact{FirstName: "Ana"}).
		AddPhone(Phone{Number: "+1 415 555 0100", Type: "CELL"}).
		AddEmail(Email{Address: "ana@example.com", Type: "work"})
	if err := Validate(base(ok)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateList(t *testing.T) {
	base := func(l *List) *Intent {
		return &Intent{
			To:         "14155550100",
			Embeds:     []Embed{{Body: "pick one"}},
			Components: []Component{l},
		}
	}

	assertValidationError(t, base(&List{ButtonText: "Open", Rows: []Row{{ID: "1", Title: "A"}}}),
		"list title is required")
	assertValidationError(t, base(&List{Title: "Menu", ButtonText: "Open"}),
		"at least one row is required for the list")
	assertValidationError(t, base(&List{Title: "Menu", Rows: []Row{{ID: "1", Title: "A"}}}),
		"button text is required for the list")
	assertValidationError(t,
		base(&List{Title: "Menu", ButtonText: strings.Repeat("x", 21), Rows: []Row{{ID: "1", Title: "A"}}}),
		"button text must be 20 characters or less")
	assertValidationError(t,
		base(&List{Title: strings.Repeat("x", 25), ButtonText: "Open", Rows: []Row{{ID: "1", Title: "A"}}}),
		"list title must be 24 characters or less")
	assertValidationError(t,
		base(&List{Title: "Menu", ButtonText: "Open", Rows: []Row{{Title: "A"}}}),
		"row ID and title are required for each row")
}

func TestValidateInteractive(t *testing.T) {
	base := func(in Interactive) *Intent {
		return &Intent{To: "14155550100", Interactive: &in}
	}

	assertValidationError(t, base(Interactive{Body: InteractiveBody{Text: "hi"}}),
		"interactive type is required")
	assertValidationError(t, base(Interactive{Type: "carousel", Body: InteractiveBody{Text: "hi"}}),
		"invalid interactive type: carousel. Allowed types are: button, list, product, product_list, cta_url, text.")
	assertValidationError(t, base(Interactive{Type: "button"}),
		"body text is required for interactive messages")
	assertValidationError(t,
		base(Interactive{Type: "button", Body: InteractiveBody{Text: "hi"}, Header: &InteractiveHeader{Type: "audio"}}),
		"invalid header type: audio. Allowed types are: text, image, video, document.")
	assertValidationError(t,
		base(Interactive{Type: "button", Body: InteractiveBody{Text: "hi"}, Header: &InteractiveHeader{Type: "image"}}),
		"image link or ID is required for image header")

	fourButtons := make([]InteractiveButton, 4)
	for i := range fourButtons {
		fourButtons[i] = InteractiveButton{Type: "reply", Reply: &ReplyRef{ID: "1", Title: "A"}}
	}
	assertValidationError(t,
		base(Interactive{Type: "button", Body: InteractiveBody{Text: "hi"}, Action: &InteractiveAction{Buttons: fourButtons}}),
		"maximum 3 buttons are allowed")
	assertValidationError(t,
		base(Interactive{Type: "button", Body: InteractiveBody{Text: "hi"}, Action: &InteractiveAction{Buttons: []InteractiveButton{{Type: "reply"}}}}),
		"reply ID and title are required for reply buttons")
	assertValidationError(t,
		base(Interactive{Type: "list", Body: InteractiveBody{Text: "hi"}, Action: &InteractiveAction{Sections: []InteractiveSection{{Title: "S"}}}}),
		"at least one row is required per section")

	ok := Interactive{
		Type:   "button",
		Header: &InteractiveHeader{Type: "text", Text: "Pick"},
		Body:   InteractiveBody{Text: "hi"},
		Action: &InteractiveAction{Buttons: []InteractiveButton{
			{Type: "reply", Reply: &ReplyRef{ID: "yes", Title: "Yes"}},
			{Type: "reply", Reply: &ReplyRef{ID: "no", Title: "No"}},
		}},
	}
	if err := Validate(base(ok)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateContextRequiresMessageID(t *testing.T) {
	assertValidationError(t, &Intent{To: "14155550100", Content: "hi", Context: &Context{}},
		"message ID is required in context for reply messages")
}
