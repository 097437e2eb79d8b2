// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedQueue is the durable queue carrying BookingConfirmedEvent.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published when all three booking writes went
// through.  It carries enough for downstream consumers to log, notify or
// count sales without calling the event API again.
type BookingConfirmedEvent struct {
    TicketID    string  `json:"ticket_id"`
    OrderID     string  `json:"order_id"`
    EventID     string  `json:"event_id"`
    SessionID   string  `json:"session_id"`
    Name        string  `json:"name"`
    Email       string  `json:"email"`
    TicketType  string  `json:"ticket_type"`
    Quantity    string  `json:"quantity"`
    TotalPrice  float64 `json:"total_price"`
    EventDate   string  `json:"event_date,omitempty"`
    ConfirmedAt string  `json:"confirmed_at"`
}
