package outbound

import (
	"strings"

	"whatsapp-client/pkg/waerrors"
)

// Build maps a validated intent onto the single wire body the API accepts.
// When several content fields are populated the first match wins: template,
// files, interactive, reaction, text, embeds, then bare components. Embeds
// claim the first file as their media header and any button or list
// components as their action, so those do not count as separate content.
func Build(intent *Intent) (*WireMessage, error) {
	msg := &WireMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               intent.To,
		Context:          intent.Context,
	}

	switch {
	case intent.Template != nil:
		msg.Type = "template"
		msg.Template = &WireTemplate{
			Name:     intent.Template.Name,
			Language: WireLanguage{Code: intent.Template.Language},
		}
		if len(intent.Template.Components) > 0 {
			msg.Template.Components = intent.Template.Components
		}

	case len(intent.Files) > 0 && len(intent.Embeds) == 0:
		buildFile(msg, intent.Files[0])

	case intent.Interactive != nil:
		msg.Type = "interactive"
		msg.Interactive = intent.Interactive

	case intent.Reaction != nil:
		msg.Type = "reaction"
		msg.Reaction = intent.Reaction

	case intent.Content != "":
		msg.Type = "text"
		msg.Text = &WireText{Body: intent.Content}

	case len(intent.Embeds) > 0:
		if err := buildEmbed(msg, intent); err != nil {
			return nil, err
		}

	case len(intent.Components) > 0:
		if err := buildComponents(msg, intent.Components); err != nil {
			return nil, err
		}

	default:
		// Unreachable after Validate; kept as an invariant check.
		return nil, waerrors.New("invalid message payload", 0)
	}

	return msg, nil
}

func buildFile(msg *WireMessage, file FileAttachment) {
	media := &WireMedia{ID: file.ID, Link: file.URL}
	switch file.Type {
	case FileImage:
		media.Caption = file.Caption
		msg.Image = media
	case FileDocument:
		media.Caption = file.Caption
		media.Filename = file.Filename
		msg.Document = media
	case FileAudio:
		msg.Audio = media
	case FileVideo:
		media.Caption = file.Caption
		msg.Video = media
	case FileSticker:
		msg.Sticker = media
	}
	msg.Type = string(file.Type)
}

// buildEmbed synthesizes an interactive message from the first embed, an
// optional media header taken from the first file, and any button or list
// components attached to the intent.
func buildEmbed(msg *WireMessage, intent *Intent) error {
	embed := intent.Embeds[0]
	interactiveType := embedInteractiveType(intent.Components)

	msg.Type = "interactive"
	msg.Interactive = &Interactive{
		Type: interactiveType,
		Body: InteractiveBody{Text: embed.Body},
	}
	if embed.Footer != "" {
		msg.Interactive.Footer = &InteractiveFooter{Text: embed.Footer}
	}

	if header := embedMediaHeader(intent.Files); header != nil {
		msg.Interactive.Header = header
	} else {
		msg.Interactive.Header = &InteractiveHeader{Type: "text", Text: embed.Title}
	}

	if len(intent.Components) == 0 {
		return nil
	}

	switch interactiveType {
	case "cta_url":
		for _, component := range intent.Components {
			if button, ok := component.(*Button); ok && button.Type != "" {
				msg.Interactive.Action = &InteractiveAction{
					Name:       "cta_url",
					Parameters: &CTAParameters{DisplayText: button.Text, URL: button.URL},
				}
				break
			}
		}
	case "button":
		action := &InteractiveAction{}
		for _, component := range intent.Components {
			button, ok := component.(*Button)
			if !ok || button.Type == "" {
				continue
			}
			wire := InteractiveButton{Type: button.Type, URL: button.URL}
			if button.Reply != nil {
				title := button.Reply.Title
				if button.Text != "" {
					title = button.Text
				}
				wire.Reply = &ReplyRef{ID: button.Reply.ID, Title: title}
			}
			action.Buttons = append(action.Buttons, wire)
		}
		msg.Interactive.Action = action
	case "list":
		action := &InteractiveAction{}
		for _, component := range intent.Components {
			list, ok := component.(*List)
			if !ok {
				continue
			}
			if action.Button == "" {
				action.Button = list.ButtonText
			}
			section := InteractiveSection{Title: list.Title}
			for _, row := range list.Rows {
				section.Rows = append(section.Rows, WireRow{ID: row.ID, Title: row.Title, Description: row.Description})
			}
			action.Sections = append(action.Sections, section)
		}
		msg.Interactive.Action = action
	default:
		return waerrors.New("unsupported component type in interactive action", 0)
	}
	return nil
}

func embedInteractiveType(components []Component) string {
	if len(components) == 0 {
		return "text"
	}
	switch c := components[0].(type) {
	case *Button:
		if c.Type == "reply" {
			return "button"
		}
		return "cta_url"
	case *List:
		return "list"
	default:
		return "text"
	}
}

func embedMediaHeader(files []FileAttachment) *InteractiveHeader {
	if len(files) == 0 {
		return nil
	}
	file := files[0]
	switch file.Type {
	case FileImage, FileVideo, FileDocument:
	default:
		return nil
	}

	ref := &MediaRef{}
	if file.URL != "" {
		ref.Link = file.URL
	}
	if file.ID != "" {
		ref = &MediaRef{ID: file.ID}
	}

	header := &InteractiveHeader{Type: string(file.Type)}
	switch file.Type {
	case FileImage:
		header.Image = ref
	case FileVideo:
		header.Video = ref
	case FileDocument:
		header.Document = ref
	}
	return header
}

func buildComponents(msg *WireMessage, components []Component) error {
	for _, component := range components {
		switch c := component.(type) {
		case *Location:
			msg.Type = "location"
			msg.Location = &WireLocation{
				Latitude:  c.Latitude,
				Longitude: c.Longitude,
				Name:      c.Name,
				Address:   c.Address,
			}
		case *Contact:
			msg.Type = "contacts"
			msg.Contacts = []WireContact{buildContact(c)}
		default:
			return waerrors.New("unsupported component type", 0)
		}
	}
	return nil
}

func buildContact(c *Contact) WireContact {
	contact := WireContact{
		Name: WireContactName{
			FormattedName: c.FormattedName,
			FirstName:     c.FirstName,
			MiddleName:    c.MiddleName,
			LastName:      c.LastName,
			Prefix:        c.NamePrefix,
		},
	}
	if contact.Name.FormattedName == "" {
		contact.Name.FormattedName = c.FirstName
	}

	for _, phone := range c.Phones {
		contact.Phones = append(contact.Phones, WireContactPhone{
			Phone: phone.Number,
			Type:  phone.Type,
			WaID:  phone.WaID,
		})
	}
	for _, email := range c.Emails {
		contact.Emails = append(contact.Emails, WireContactEmail{
			Email: email.Address,
			Type:  contactEntryType(email.Type, "WORK", "HOME"),
		})
	}
	for _, address := range c.Addresses {
		wire := WireContactAddress{
			Street: strings.TrimSpace(address.Street.Name + " " + address.Street.Number),
			City:   address.City,
			Zip:    address.ZipCode,
			Type:   contactAddressType(address.Type),
		}
		if address.Country != nil {
			wire.State = address.Country.StateCode
			wire.Country = address.Country.Name
			wire.CountryCode = address.Country.Code
		}
		contact.Addresses = append(contact.Addresses, wire)
	}
	for _, site := range c.URLs {
		contact.URLs = append(contact.URLs, WireContactURL{
			URL:  site.URL,
			Type: contactEntryType(site.Type, "WORK", "HOME"),
		})
	}
	if c.Birthday != nil {
		contact.Birthday = c.Birthday.Format("2006-01-02")
	}
	if c.Company != nil {
		contact.Org = &WireContactOrg{
			Company:    c.Company.Name,
			Department: c.Company.DepartmentName,
		}
		if c.Job != nil {
			contact.Org.Title = c.Job.Title
		}
	}
	return contact
}

func contactEntryType(t, work, home string) string {
	if t == "work" {
		return work
	}
	return home
}

func contactAddressType(t string) string {
	if t == "home" {
		return "HOME"
	}
	return "WORK"
}
