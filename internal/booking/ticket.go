// Package booking holds the ticket booking form, its submission protocol
// against the event API and the persisted confirmation.
package booking

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/iliyamo/fest-booking/internal/eventapi"
)

// DefaultMaxQuantity caps the quantity input while no ticket is selected.
const DefaultMaxQuantity = 10

// TicketType is a purchasable ticket with its validity window.
type TicketType struct {
	ID                string  `json:"id"`
	TicketType        string  `json:"ticket_type"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantity_available"`
	ValidFromDate     string  `json:"valid_from_date"`
	ValidToDate       string  `json:"valid_to_date"`
	AccessSpecialShow bool    `json:"access_special_show"`
}

// FromAPI converts the remote ticket records.
func FromAPI(in []eventapi.Ticket) []TicketType {
	out := make([]TicketType, 0, len(in))
	for _, t := range in {
		out = append(out, TicketType{
			ID:                t.ID.String(),
			TicketType:        t.TicketType,
			Price:             t.Price,
			QuantityAvailable: t.QuantityAvailable,
			ValidFromDate:     t.ValidFromDate,
			ValidToDate:       t.ValidToDate,
			AccessSpecialShow: t.AccessSpecialShow,
		})
	}
	return out
}

var rupiah = message.NewPrinter(language.Indonesian)

// FormatRupiah groups thousands with dots: 350000 → "350.000".
func FormatRupiah(v float64) string { return rupiah.Sprint(number.Decimal(v)) }

// DisplayText is the select option label, "<type> - Rp <price>".  It is
// also the value the form submits.
func (t TicketType) DisplayText() string {
	return t.TicketType + " - Rp " + FormatRupiah(t.Price)
}

// SoldOut reports whether the option is disabled.
func (t TicketType) SoldOut() bool { return t.QuantityAvailable <= 0 }

// Availability is the note shown next to scarce tickets: "(Sold Out)" at
// zero, "(Tersisa N)" up to a hundred, nothing above.
func (t TicketType) Availability() string {
	switch {
	case t.SoldOut():
		return "(Sold Out)"
	case t.QuantityAvailable <= 100:
		return fmt.Sprintf("(Tersisa %d)", t.QuantityAvailable)
	}
	return ""
}

// Window is the inclusive validity range truncated to calendar days.  ok is
// false when either bound does not parse.
func (t TicketType) Window() (from, to time.Time, ok bool) {
	from, ok1 := eventapi.ParseDate(t.ValidFromDate)
	to, ok2 := eventapi.ParseDate(t.ValidToDate)
	return from, to, ok1 && ok2
}

// DateAllowed reports whether day may be picked for ticket.  Only the
// calendar date of day is compared and both bounds are inclusive.  With no
// ticket every day is disabled.
func DateAllowed(ticket *TicketType, day time.Time) bool {
	if ticket == nil {
		return false
	}
	from, to, ok := ticket.Window()
	if !ok {
		return false
	}
	d := truncateDay(day)
	return !d.Before(from) && !d.After(to)
}

// Day is one cell of the date picker.
type Day struct {
	Date    string `json:"date"`
	Enabled bool   `json:"enabled"`
}

// Calendar lists every day of the month containing month with its enabled
// flag for ticket.
func Calendar(ticket *TicketType, month time.Time) []Day {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	var days []Day
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{Date: d.Format(time.DateOnly), Enabled: DateAllowed(ticket, d)})
	}
	return days
}

// FindTicket resolves a submitted ticket type.  The display text is matched
// first; failing that the first ticket whose type name occurs in the value
// wins, which keeps older clients that submit a bare type name working.
func FindTicket(value string, types []TicketType) *TicketType {
	if value == "" {
		return nil
	}
	for i := range types {
		if types[i].DisplayText() == value {
			return &types[i]
		}
	}
	for i := range types {
		if types[i].TicketType != "" && containsFold(value, types[i].TicketType) {
			return &types[i]
		}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
