package outbound

import "time"

// Component is a polymorphic content block that can be attached to an
// Intent: a location, a contact card, an embed, a button or a list. The set
// is closed; Validate and Build match on the concrete type and treat
// anything else as unknown.
type Component interface {
	isComponent()
}

func (*Location) isComponent() {}
func (*Contact) isComponent()  {}
func (*Embed) isComponent()    {}
func (*Button) isComponent()   {}
func (*List) isComponent()     {}

// Location is a map pin. Latitude and longitude are required.
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
	Address   string
}

func (l *Location) SetName(name string) *Location {
	l.Name = name
	return l
}

func (l *Location) SetAddress(address string) *Location {
	l.Address = address
	return l
}

// Phone is a contact phone entry. Number is required.
type Phone struct {
	Number string
	Type   string
	WaID   string
}

// Email is a contact email entry. Type "work" maps to WORK on the wire,
// anything else to HOME.
type Email struct {
	Address string
	Type    string
}

// Street carries the split street fields joined on the wire.
type Street struct {
	Name   string
	Number string
}

// Country identifies the address country and state.
type Country struct {
	Name      string
	Code      string
	StateCode string
}

// Address is a contact postal address.
type Address struct {
	Street  Street
	City    string
	ZipCode string
	Country *Country
	Type    string
}

// Website is a contact URL entry.
type Website struct {
	URL  string
	Type string
}

// Company holds the contact's organization fields.
type Company struct {
	Name           string
	DepartmentName string
}

// Job holds the contact's job title.
type Job struct {
	Title string
}

// Contact is a contact card. FirstName and at least one phone are required.
type Contact struct {
	FirstName     string
	MiddleName    string
	LastName      string
	FormattedName string
	NamePrefix    string
	Birthday      *time.Time
	Phones        []Phone
	Emails        []Email
	Addresses     []Address
	URLs          []Website
	Company       *Company
	Job           *Job
}

func (c *Contact) SetBirthday(birthday time.Time) *Contact {
	c.Birthday = &birthday
	return c
}

func (c *Contact) AddPhone(phone Phone) *Contact {
	c.Phones = append(c.Phones, phone)
	return c
}

func (c *Contact) AddEmail(email Email) *Contact {
	c.Emails = append(c.Emails, email)
	return c
}

func (c *Contact) AddAddress(address Address) *Contact {
	c.Addresses = append(c.Addresses, address)
	return c
}

func (c *Contact) AddURL(site Website) *Contact {
	c.URLs = append(c.URLs, site)
	return c
}

func (c *Contact) SetCompany(company Company) *Contact {
	c.Company = &company
	return c
}

func (c *Contact) SetJob(job Job) *Contact {
	c.Job = &job
	return c
}

// Embed is a rich block rendered as an interactive message: title becomes
// the header (unless a media header is available), body the body, footer
// the footer. Body is required; title and footer cap at 60 characters, body
// at 1000.
type Embed struct {
	Title  string
	Body   string
	Footer string
}

func (e *Embed) SetTitle(title string) *Embed {
	e.Title = title
	return e
}

func (e *Embed) SetBody(body string) *Embed {
	e.Body = body
	return e
}

func (e *Embed) SetFooter(footer string) *Embed {
	e.Footer = footer
	return e
}

// ButtonReply is the id/title pair of a reply button.
type ButtonReply struct {
	ID    string
	Title string
}

// Button is an action button attached to an embed. Type "reply" requires a
// Reply and forbids Text; type "url" requires URL and Text.
type Button struct {
	Type  string
	Reply *ButtonReply
	URL   string
	Text  string
}

func (b *Button) SetDisplayText(text string) *Button {
	b.Text = text
	return b
}

func (b *Button) SetURL(url string) *Button {
	b.URL = url
	return b
}

// Row is a single list entry. ID and Title are required.
type Row struct {
	ID          string
	Title       string
	Description string
}

// List is a section of selectable rows attached to an embed. Title caps at
// 24 characters, ButtonText at 20; at least one row is required.
type List struct {
	Title      string
	Rows       []Row
	ButtonText string
}

func (l *List) SetTitle(title string) *List {
	l.Title = title
	return l
}

func (l *List) AddRow(row Row) *List {
	l.Rows = append(l.Rows, row)
	return l
}

func (l *List) SetButtonText(text string) *List {
	l.ButtonText = text
	return l
}
