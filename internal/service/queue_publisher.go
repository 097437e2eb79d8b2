// Package queue_publisher publishes domain events to RabbitMQ.  Publish
// errors are returned so the caller can log them; a broker outage never
// fails a booking.
package queue_publisher

import (
    "context"
    "encoding/json"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fest-booking/internal/booking"
    q "github.com/iliyamo/fest-booking/internal/queue"
)

// Publisher keeps one broker connection and channel and re-dials lazily
// after a failure.  It satisfies booking.Publisher.
type Publisher struct {
    url    string
    logger *logrus.Logger

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

func New(url string, logger *logrus.Logger) *Publisher {
    return &Publisher{url: url, logger: logger}
}

// PublishBookingConfirmed publishes the confirmation to the
// "booking.confirmed" queue as a persistent message.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, c booking.Confirmation) error {
    body, err := json.Marshal(ToEvent(c))
    if err != nil {
        p.logger.WithError(err).Error("rabbitmq: marshal event failed")
        return err
    }

    p.mu.Lock()
    defer p.mu.Unlock()
    ch, err := p.channel()
    if err != nil {
        p.logger.WithError(err).Warn("rabbitmq: channel unavailable")
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",                      // default exchange
        q.BookingConfirmedQueue, // routing key = queue name
        false,                   // mandatory
        false,                   // immediate
        pub,
    ); err != nil {
        p.reset()
        p.logger.WithError(err).Warn("rabbitmq: publish failed")
        return err
    }
    return nil
}

// channel returns the open channel, dialing when needed.  Caller holds mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
    if p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.reset()
    conn, err := amqp.Dial(p.url)
    if err != nil {
        return nil, err
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, err
    }
    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(q.BookingConfirmedQueue, true, false, false, false, nil); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        return nil, err
    }
    p.conn, p.ch = conn, ch
    return ch, nil
}

func (p *Publisher) reset() {
    if p.ch != nil {
        _ = p.ch.Close()
    }
    if p.conn != nil {
        _ = p.conn.Close()
    }
    p.conn, p.ch = nil, nil
}

// Close releases the broker connection.
func (p *Publisher) Close() {
    p.mu.Lock()
    p.reset()
    p.mu.Unlock()
}

// ToEvent flattens a confirmation into the wire event.
func ToEvent(c booking.Confirmation) q.BookingConfirmedEvent {
    ev := q.BookingConfirmedEvent{
        EventID:     c.EventID,
        SessionID:   c.SessionID,
        Name:        c.Form.Name,
        Email:       c.Form.Email,
        TicketType:  c.Form.TicketType,
        Quantity:    c.Form.TicketQuantity,
        ConfirmedAt: c.ConfirmedAt.UTC().Format(time.RFC3339),
    }
    if d := c.Form.BookingDetails; d != nil {
        ev.TicketID, ev.OrderID, ev.TotalPrice = d.TicketID, d.OrderID, d.TotalPrice
    }
    if c.Form.StartDate != nil {
        ev.EventDate = c.Form.StartDate.Format(time.DateOnly)
    }
    return ev
}
