// Package queue contains the background consumer that listens to the
// booking.confirmed queue and appends one line per booking to a log file.
package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"
)

// Consumer drains booking.confirmed into LogPath.
type Consumer struct {
    URL     string
    LogPath string
    Logger  *logrus.Logger
}

// Run connects to the broker, declares the durable queue and consumes
// messages until ctx is cancelled.  Broker outages are retried with
// exponential backoff capped at 30s.  A message that cannot be handled is
// rejected without requeue so a poison message cannot spin the loop.
func (c *Consumer) Run(ctx context.Context) error {
    log := c.Logger.WithField("component", "booking-consumer")
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            log.WithError(err).Warnf("dial failed; retrying in %s", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.WithError(err).Warn("consume loop ended; reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.Logger.WithError(err).Warn("booking-consumer: set QoS failed")
    }
    if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(BookingConfirmedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := AppendBookingLine(c.LogPath, d.Body); err != nil {
                c.Logger.WithError(err).Error("booking-consumer: handle message failed")
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// AppendBookingLine decodes one event and appends its log line to path.
func AppendBookingLine(path string, body []byte) error {
    var ev BookingConfirmedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(FormatBookingLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatBookingLine renders a single human-friendly line.
func FormatBookingLine(ev BookingConfirmedEvent) string {
    date := ev.EventDate
    if date == "" {
        date = "-"
    }
    return fmt.Sprintf("[%s] Booking confirmed | ticket_id=%s | order_id=%s | event_id=%s | name=%q | email=%s | ticket=%q | qty=%s | total=%.0f | date=%s\n",
        ev.ConfirmedAt, ev.TicketID, ev.OrderID, ev.EventID, ev.Name, ev.Email, ev.TicketType, ev.Quantity, ev.TotalPrice, date)
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
