// Package eventapi talks to the remote event and ticketing API that owns
// events, tickets, guest stars, venues, users, orders and ticket details.
package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// APIError is a non-2xx answer, or a 2xx answer whose body carries an
// "error" field.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eventapi: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client is a thin JSON client.  It never retries.
type Client struct {
	baseURL string
	logger  *logrus.Logger
	hc      *http.Client
}

// New builds a client for baseURL.  hc carries the timeout.
func New(baseURL string, logger *logrus.Logger, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), logger: logger, hc: hc}
}

// GetEvent reads the event shown in the hero section.
func (c *Client) GetEvent(ctx context.Context, eventID, merchantID string) (Event, error) {
	var raw json.RawMessage
	q := url.Values{"event_id": {eventID}, "merchant_id": {merchantID}}
	if err := c.do(ctx, "get event", http.MethodGet, "/events", q, nil, &raw); err != nil {
		return Event{}, err
	}
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &probe) == nil && len(probe.Error) > 0 && string(probe.Error) != "null" {
		err := &APIError{Op: "get event", StatusCode: http.StatusOK, Body: string(probe.Error)}
		c.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, err
	}
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("eventapi: get event: decode: %w", err)
	}
	return ev, nil
}

// ListTicketTypes reads the ticket types of an event.
func (c *Client) ListTicketTypes(ctx context.Context, eventID string) ([]Ticket, error) {
	var out []Ticket
	err := c.do(ctx, "list ticket types", http.MethodGet, "/tickets/event", url.Values{"event_id": {eventID}}, nil, &out)
	return out, err
}

// ListGuestStars reads the performers of an event.
func (c *Client) ListGuestStars(ctx context.Context, eventID string) ([]Guest, error) {
	var out []Guest
	err := c.do(ctx, "list guest stars", http.MethodGet, "/guests/stars", url.Values{"event_id": {eventID}}, nil, &out)
	return out, err
}

// GetVenue reads the venue record of an event.
func (c *Client) GetVenue(ctx context.Context, eventID, merchantID string) (Venue, error) {
	var out Venue
	q := url.Values{"event_id": {eventID}, "merchant_id": {merchantID}}
	err := c.do(ctx, "get venue", http.MethodGet, "/facilities/venue", q, nil, &out)
	return out, err
}

// UpsertUser creates or finds the user by email and returns its id.
func (c *Client) UpsertUser(ctx context.Context, in UserInput) (Created, error) {
	var out Created
	err := c.do(ctx, "upsert user", http.MethodPost, "/users/upsert", nil, in, &out)
	return out, err
}

// CreateOrder records an order transaction.
func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (Created, error) {
	var out Created
	err := c.do(ctx, "create order", http.MethodPost, "/order-transactions", nil, in, &out)
	return out, err
}

// CreateTicketDetail records the attendee details of an order.
func (c *Client) CreateTicketDetail(ctx context.Context, in TicketDetailInput) (TicketDetail, error) {
	var out TicketDetail
	err := c.do(ctx, "create ticket detail", http.MethodPost, "/ticket-details", nil, in, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, in, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var body io.Reader
	if in != nil {
		reqBuff, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("eventapi: %s: encode: %w", op, err)
		}
		body = bytes.NewReader(reqBuff)
	}

	hr, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).WithField("op", op).Error()
		return fmt.Errorf("eventapi: %s: %w", op, err)
	}
	hr.Header.Add("Accept", "application/json")
	if in != nil {
		hr.Header.Add("Content-Type", "application/json")
	}

	hresp, err := c.hc.Do(hr)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).WithField("op", op).Error()
		return fmt.Errorf("eventapi: %s: %w", op, err)
	}
	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).WithField("op", op).Error()
		return fmt.Errorf("eventapi: %s: read: %w", op, err)
	}
	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		apiErr := &APIError{Op: op, StatusCode: hresp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		c.logger.WithContext(ctx).WithError(apiErr).Error()
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.WithContext(ctx).WithError(err).WithField("op", op).Error()
		return fmt.Errorf("eventapi: %s: decode: %w", op, err)
	}
	return nil
}
