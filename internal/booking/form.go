package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Details is filled in after a successful submission.
type Details struct {
	TicketID   string  `json:"ticketId"`
	OrderID    string  `json:"orderId"`
	TotalPrice float64 `json:"totalPrice"`
	Days       int     `json:"days"`
}

// Form is the booking form as the visitor filled it in.  Quantity and age
// stay strings as typed.  The JSON shape is what the confirmation slot
// stores.
type Form struct {
	Name           string     `json:"name" validate:"required"`
	Phone          string     `json:"phone" validate:"required"`
	Email          string     `json:"email" validate:"required,email"`
	Address        string     `json:"address" validate:"required"`
	TicketQuantity string     `json:"ticketQuantity" validate:"required,number"`
	TicketType     string     `json:"ticketType" validate:"required"`
	Age            string     `json:"age" validate:"required,number"`
	Gender         string     `json:"gender" validate:"required,oneof=Laki-laki Perempuan"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	BookingDetails *Details   `json:"bookingDetails,omitempty"`

	selected *TicketType
}

// SelectTicket changes the ticket type.  The quantity is reset and both
// dates are cleared because they were chosen against the old window.
func (f *Form) SelectTicket(display string, types []TicketType) {
	f.TicketType = display
	f.TicketQuantity = ""
	f.StartDate = nil
	f.EndDate = nil
	f.selected = FindTicket(display, types)
}

// Bind re-attaches the ticket named by TicketType without touching the
// other fields.  A form decoded from a request or the slot has no
// selection until it is bound.
func (f *Form) Bind(types []TicketType) { f.selected = FindTicket(f.TicketType, types) }

// Selected is the ticket recorded by the last SelectTicket or Bind.
func (f Form) Selected() *TicketType { return f.selected }

// QuantityDisabled is true until a type is chosen and the types are loaded.
func (f Form) QuantityDisabled(loaded bool) bool { return f.TicketType == "" || !loaded }

// DatesDisabled is true until a known ticket is selected and the types are
// loaded.
func (f Form) DatesDisabled(loaded bool) bool { return f.selected == nil || !loaded }

// MaxQuantity is the selected ticket's stock, or DefaultMaxQuantity.
func (f Form) MaxQuantity() int {
	if f.selected != nil {
		return f.selected.QuantityAvailable
	}
	return DefaultMaxQuantity
}

// Quantity parses TicketQuantity; zero when it is not a number.
func (f Form) Quantity() int {
	n, _ := strconv.Atoi(strings.TrimSpace(f.TicketQuantity))
	return n
}

// Clear empties every field, the state after "Pesan Tiket Lagi".
func (f *Form) Clear() { *f = Form{} }

// ValidationError lists what is wrong with a submitted form.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "booking: invalid form: " + strings.Join(e.Problems, "; ")
}

var validate = validator.New()

// Age bounds mirror the number input of the form.
const (
	minAge = 13
	maxAge = 100
)

// Validate checks f against ticket.  Field presence and formats come from
// the struct tags; the quantity range, age range and dates depend on the
// ticket and are checked here.
func Validate(f Form, ticket *TicketType) error {
	var problems []string
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	if ticket == nil {
		problems = append(problems, "TicketType: unknown ticket type")
	} else {
		if ticket.SoldOut() {
			problems = append(problems, "TicketType: sold out")
		}
		f.selected = ticket
		if q := f.Quantity(); q < 1 || q > f.MaxQuantity() {
			problems = append(problems, fmt.Sprintf("TicketQuantity: must be between 1 and %d", f.MaxQuantity()))
		}
		if f.StartDate != nil && !DateAllowed(ticket, *f.StartDate) {
			problems = append(problems, "StartDate: outside ticket validity")
		}
		if f.EndDate != nil && !DateAllowed(ticket, *f.EndDate) {
			problems = append(problems, "EndDate: outside ticket validity")
		}
	}
	if age, err := strconv.Atoi(strings.TrimSpace(f.Age)); err == nil && (age < minAge || age > maxAge) {
		problems = append(problems, fmt.Sprintf("Age: must be between %d and %d", minAge, maxAge))
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		problems = append(problems, "EndDate: before StartDate")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
