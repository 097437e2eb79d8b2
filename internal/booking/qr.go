package booking

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const qrService = "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data="

type qrPayload struct {
	TicketID   string  `json:"ticketId"`
	OrderID    string  `json:"orderId,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	TicketType string  `json:"ticketType"`
	Quantity   string  `json:"quantity"`
	TotalPrice float64 `json:"totalPrice,omitempty"`
	Days       int     `json:"days,omitempty"`
	Event      string  `json:"event"`
}

// QRPayload is the JSON encoded into the confirmation QR code.  A form
// without booking details gets a ticket id derived from now.
func QRPayload(f Form, eventID string, now time.Time) string {
	p := qrPayload{
		Name:       f.Name,
		Email:      f.Email,
		TicketType: f.TicketType,
		Quantity:   f.TicketQuantity,
		Event:      "Event " + eventID,
	}
	if d := f.BookingDetails; d != nil {
		p.TicketID, p.OrderID, p.TotalPrice, p.Days = d.TicketID, d.OrderID, d.TotalPrice, d.Days
	} else {
		ms := fmt.Sprint(now.UnixMilli())
		p.TicketID = TicketPrefix + ms[max(0, len(ms)-6):]
	}
	bs, _ := json.Marshal(p)
	return string(bs)
}

// QRImageURL points the QR image at the public generator.
func QRImageURL(payload string) string {
	return qrService + strings.ReplaceAll(url.QueryEscape(payload), "+", "%20")
}
