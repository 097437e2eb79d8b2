// Package view renders the landing page: the three sections, the booking
// form or, when the visitor already booked, the confirmation.
package view

import (
	_ "embed"
	"html/template"
	"io"
	"time"

	"github.com/iliyamo/fest-booking/internal/booking"
	"github.com/iliyamo/fest-booking/internal/config"
	"github.com/iliyamo/fest-booking/internal/editable"
	"github.com/iliyamo/fest-booking/internal/editing"
	"github.com/iliyamo/fest-booking/internal/section"
)

//go:embed page.html
var pageHTML string

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"render":  func(s *editing.Store, e editable.Element) template.HTML { return e.Render(s) },
	"resolve": func(s *editing.Store, e editable.Element) string { return e.Resolve(s) },
	"rupiah":  booking.FormatRupiah,
	"list":    func(v ...string) []string { return v },
}).Parse(pageHTML))

// Page is everything one render needs.
type Page struct {
	Store    *editing.Store
	Sections section.Page
	// EditToggle shows the Edit Mode / Preview switch (?edit=true).
	EditToggle   bool
	Form         Form
	Confirmation *Confirmation
}

// EditMode reports whether the visitor's store is in edit mode.
func (p Page) EditMode() bool { return p.Store != nil && p.Store.EditMode() }

// TicketOption is one entry of the ticket select.  Max, From and To let the
// page script bound the quantity and date inputs when the option is picked.
type TicketOption struct {
	ID           editable.Element
	Value        string
	Availability string
	Disabled     bool
	Max          int
	From         string
	To           string
}

// Field is a labelled form control.
type Field struct {
	ID          string
	Label       editable.Element
	Placeholder editable.Element
}

// Form is the booking form.  Values holds what the visitor submitted when
// the form is shown again after a failed post; Error and Problems explain
// the failure.
type Form struct {
	EventID          string
	Title            editable.Element
	Subtitle         editable.Element
	CardTitle        editable.Element
	Submit           string
	Fields           map[string]Field
	Genders          []editable.Element
	Options          []TicketOption
	Fallback         bool
	Loaded           bool
	Values           booking.Form
	QuantityDisabled bool
	DatesDisabled    bool
	MaxQuantity      int
	MinDate          string
	MaxDate          string
	Error            string
	Problems         []string
}

// NewForm builds the empty form.  Without remote ticket types the fallback
// options are listed; they cannot be booked.
func NewForm(c config.FormCopy, eventID string, types []booking.TicketType, loaded bool) Form {
	return NewFilledForm(c, eventID, types, loaded, booking.Form{})
}

// NewFilledForm builds the form prefilled with values.  The ticket named by
// values is bound against types, which enables the quantity and date inputs
// and bounds them by the ticket's stock and validity window.
func NewFilledForm(c config.FormCopy, eventID string, types []booking.TicketType, loaded bool, values booking.Form) Form {
	values.Bind(types)
	f := Form{
		EventID:          eventID,
		Title:            editable.New(editable.Text, "form-title", c.Title).WithClass("text-4xl md:text-6xl font-black text-white mb-4"),
		Subtitle:         editable.New(editable.Text, "form-subtitle", c.Subtitle).WithClass("text-xl text-white/80 text-pretty"),
		CardTitle:        editable.New(editable.Text, "form-card-title", c.CardTitle).WithClass("text-2xl font-bold text-center text-amber-400"),
		Submit:           c.Submit,
		Fields:           make(map[string]Field, len(c.Fields)),
		Loaded:           loaded,
		Values:           values,
		QuantityDisabled: values.QuantityDisabled(loaded),
		DatesDisabled:    values.DatesDisabled(loaded),
		MaxQuantity:      values.MaxQuantity(),
	}
	if t := values.Selected(); t != nil {
		f.MinDate, f.MaxDate = window(*t)
	}
	for _, fc := range c.Fields {
		f.Fields[fc.ID] = Field{
			ID:          fc.ID,
			Label:       editable.New(editable.Text, fc.ID+"-label", fc.Label).WithClass("text-white font-semibold"),
			Placeholder: editable.New(editable.Text, fc.ID+"-placeholder", fc.Placeholder),
		}
	}
	for _, g := range c.Genders {
		f.Genders = append(f.Genders, editable.New(editable.Text, g.ID, g.Label))
	}
	if len(types) == 0 {
		f.Fallback = true
		for _, t := range c.FallbackTickets {
			f.Options = append(f.Options, TicketOption{
				ID:    editable.New(editable.Text, t.ID, t.Label),
				Value: t.Label,
				Max:   booking.DefaultMaxQuantity,
			})
		}
		return f
	}
	for _, t := range types {
		from, to := window(t)
		f.Options = append(f.Options, TicketOption{
			ID:           editable.New(editable.Text, "ticket-"+t.ID, t.DisplayText()),
			Value:        t.DisplayText(),
			Availability: t.Availability(),
			Disabled:     t.SoldOut(),
			Max:          t.QuantityAvailable,
			From:         from,
			To:           to,
		})
	}
	return f
}

// window is the ticket's validity as YYYY-MM-DD bounds for a date input.
func window(t booking.TicketType) (from, to string) {
	a, b, ok := t.Window()
	if !ok {
		return "", ""
	}
	return a.UTC().Format(time.DateOnly), b.UTC().Format(time.DateOnly)
}

// Value is the submitted value of the field id, as an input value.
func (f Form) Value(id string) string {
	v := f.Values
	date := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.DateOnly)
	}
	switch id {
	case "name":
		return v.Name
	case "phone":
		return v.Phone
	case "email":
		return v.Email
	case "address":
		return v.Address
	case "ticket-quantity":
		return v.TicketQuantity
	case "age":
		return v.Age
	case "start-date":
		return date(v.StartDate)
	case "end-date":
		return date(v.EndDate)
	}
	return ""
}

// Confirmation is the success view of a stored booking.
type Confirmation struct {
	EventID   string
	TicketID  string
	Form      booking.Form
	EventDate string
	QRImage   string
}

// NewConfirmation prepares the success view for f.
func NewConfirmation(f booking.Form, eventID string, now time.Time) *Confirmation {
	payload := booking.QRPayload(f, eventID, now)
	c := &Confirmation{EventID: eventID, Form: f, QRImage: booking.QRImageURL(payload)}
	if f.BookingDetails != nil {
		c.TicketID = f.BookingDetails.TicketID
	}
	if f.StartDate != nil {
		c.EventDate = section.LongDate(*f.StartDate)
	}
	return c
}

// Render writes the page.
func Render(w io.Writer, p Page) error { return pageTmpl.Execute(w, p) }
