package outbound

// WireMessage is the exact JSON body the Cloud API messages endpoint
// accepts. Exactly one of the typed branches is set, tagged by Type.
// Absent optional fields are omitted, never emitted as null.
type WireMessage struct {
	MessagingProduct string        `json:"messaging_product"`
	RecipientType    string        `json:"recipient_type,omitempty"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Context          *Context      `json:"context,omitempty"`
	Text             *WireText     `json:"text,omitempty"`
	Template         *WireTemplate `json:"template,omitempty"`
	Image            *WireMedia    `json:"image,omitempty"`
	Document         *WireMedia    `json:"document,omitempty"`
	Audio            *WireMedia    `json:"audio,omitempty"`
	Video            *WireMedia    `json:"video,omitempty"`
	Sticker          *WireMedia    `json:"sticker,omitempty"`
	Interactive      *Interactive  `json:"interactive,omitempty"`
	Location         *WireLocation `json:"location,omitempty"`
	Contacts         []WireContact `json:"contacts,omitempty"`
	Reaction         *Reaction     `json:"reaction,omitempty"`
}

type WireText struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

type WireTemplate struct {
	Name       string              `json:"name"`
	Language   WireLanguage        `json:"language"`
	Components []TemplateComponent `json:"components,omitempty"`
}

type WireLanguage struct {
	Code LanguageCode `json:"code"`
}

type WireMedia struct {
	ID       string `json:"id,omitempty"`
	Link     string `json:"link,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type WireLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// WireContact is one entry of a contacts message.
type WireContact struct {
	Name      WireContactName      `json:"name"`
	Phones    []WireContactPhone   `json:"phones,omitempty"`
	Emails    []WireContactEmail   `json:"emails,omitempty"`
	Addresses []WireContactAddress `json:"addresses,omitempty"`
	URLs      []WireContactURL     `json:"urls,omitempty"`
	Birthday  string               `json:"birthday,omitempty"`
	Org       *WireContactOrg      `json:"org,omitempty"`
}

type WireContactName struct {
	FormattedName string `json:"formatted_name"`
	FirstName     string `json:"first_name"`
	MiddleName    string `json:"middle_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Prefix        string `json:"prefix,omitempty"`
}

type WireContactPhone struct {
	Phone string `json:"phone"`
	Type  string `json:"type,omitempty"`
	WaID  string `json:"wa_id,omitempty"`
}

type WireContactEmail struct {
	Email string `json:"email"`
	Type  string `json:"type,omitempty"`
}

type WireContactAddress struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Type        string `json:"type,omitempty"`
}

type WireContactURL struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

type WireContactOrg struct {
	Company    string `json:"company,omitempty"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
}
