package eventapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ID is a remote record id.  The event API answers with numbers for some
// tables and strings for others; both decode into the same form.
type ID string

// UnmarshalJSON accepts a JSON number, string or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so the remote side sees the
// same type it handed out.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Event is the record behind the hero section.
type Event struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	HeroImage   string `json:"hero_image"`
}

// Ticket is one purchasable ticket type of an event.
type Ticket struct {
	ID                ID      `json:"id"`
	TicketType        string  `json:"ticket_type"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantity_available"`
	ValidFromDate     string  `json:"valid_from_date"`
	ValidToDate       string  `json:"valid_to_date"`
	AccessSpecialShow bool    `json:"access_special_show"`
}

// GuestSchedule is one performance slot of a guest star.
type GuestSchedule struct {
	ScheduleDate string `json:"schedule_date"`
	Stage        string `json:"stage"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// Guest is a performer with its schedules; only the first schedule is shown.
type Guest struct {
	ID        ID              `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Image     string          `json:"image"`
	Schedules []GuestSchedule `json:"guest_schedules"`
}

// Facilities are the venue amenities.
type Facilities struct {
	Parking   string `json:"parking"`
	FoodCourt string `json:"food_court"`
}

// Venue is the record behind the venue section.
type Venue struct {
	Location   string      `json:"location"`
	Capacity   int64       `json:"capacity"`
	ImageVenue string      `json:"image_venue"`
	Facilities *Facilities `json:"facilities"`
}

// UserInput is the body of the user upsert.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderInput is the body of the order transaction.  Price is the total,
// unit price times quantity.
type OrderInput struct {
	UserID    ID      `json:"user_id"`
	EventID   int     `json:"event_id"`
	OrderDate string  `json:"order_date"`
	Status    string  `json:"status"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	TicketID  ID      `json:"ticket_id"`
}

// TicketDetailInput is the body of the per-attendee ticket record.
// EventDate is YYYY-MM-DD or null.
type TicketDetailInput struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	Age          string  `json:"age"`
	Gender       string  `json:"gender"`
	TicketStatus string  `json:"ticket_status"`
	EventDate    *string `json:"event_date"`
	OrderID      ID      `json:"order_id"`
}

// Created is the minimal answer of the create endpoints.
type Created struct {
	ID ID `json:"id"`
}

// TicketDetail is the answer of the ticket-details endpoint.
type TicketDetail struct {
	ID             ID     `json:"id"`
	OrderID        ID     `json:"order_id"`
	TicketStatus   string `json:"ticket_status"`
	TicketQuantity int    `json:"ticket_quantity"`
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", time.DateOnly}

// ParseDate accepts the date shapes the event API emits.  Only the calendar
// date matters, so the result keeps the date as written and drops the zone.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
