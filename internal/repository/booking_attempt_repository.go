package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/fest-booking/internal/booking"
)

// BookingAttemptRepo journals booking submissions in MySQL.  Every attempt
// is one row, successful or not, so an order created remotely whose ticket
// detail then failed can still be found and reconciled by hand.  The repo
// satisfies booking.Journal.
type BookingAttemptRepo struct {
    db *sql.DB
}

// NewBookingAttemptRepo returns a repo bound to the given database.
func NewBookingAttemptRepo(db *sql.DB) *BookingAttemptRepo { return &BookingAttemptRepo{db: db} }

// bookingAttemptsDDL creates the journal table.  last_step is the last
// remote call that succeeded ('' when none did).
const bookingAttemptsDDL = `CREATE TABLE IF NOT EXISTS booking_attempts (
    id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    session_id       VARCHAR(64)  NOT NULL,
    event_id         VARCHAR(32)  NOT NULL,
    last_step        VARCHAR(32)  NOT NULL DEFAULT '',
    user_id          VARCHAR(64)  NULL,
    order_id         VARCHAR(64)  NULL,
    ticket_detail_id VARCHAR(64)  NULL,
    quantity         INT          NOT NULL,
    total_price      DECIMAL(14,2) NOT NULL,
    error            TEXT         NULL,
    created_at       DATETIME     NOT NULL,
    KEY idx_booking_attempts_session (session_id),
    KEY idx_booking_attempts_failed (last_step, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the journal table when it is missing.
func (r *BookingAttemptRepo) EnsureSchema(ctx context.Context) error {
    _, err := r.db.ExecContext(ctx, bookingAttemptsDDL)
    return err
}

// Record inserts one attempt.
func (r *BookingAttemptRepo) Record(ctx context.Context, a booking.Attempt) error {
    const q = `INSERT INTO booking_attempts
        (session_id, event_id, last_step, user_id, order_id, ticket_detail_id, quantity, total_price, error, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q,
        a.SessionID, a.EventID, string(a.LastStep),
        nullString(a.UserID), nullString(a.OrderID), nullString(a.TicketDetailID),
        a.Quantity, a.TotalPrice, nullString(a.Err), a.CreatedAt,
    )
    return err
}

// ListIncomplete returns attempts that wrote something remotely but did not
// reach the ticket detail, newest first.  These are the orphaned users and
// orders left behind by a partial failure.
func (r *BookingAttemptRepo) ListIncomplete(ctx context.Context, limit int) ([]booking.Attempt, error) {
    if limit <= 0 || limit > 500 {
        limit = 100
    }
    const q = `SELECT session_id, event_id, last_step, user_id, order_id, ticket_detail_id, quantity, total_price, error, created_at
        FROM booking_attempts
        WHERE last_step IN ('user', 'order')
        ORDER BY created_at DESC
        LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []booking.Attempt
    for rows.Next() {
        var (
            a                                 booking.Attempt
            step                              string
            userID, orderID, detailID, errMsg sql.NullString
        )
        if err := rows.Scan(&a.SessionID, &a.EventID, &step, &userID, &orderID, &detailID,
            &a.Quantity, &a.TotalPrice, &errMsg, &a.CreatedAt); err != nil {
            return nil, err
        }
        a.LastStep = booking.Step(step)
        a.UserID, a.OrderID, a.TicketDetailID, a.Err = userID.String, orderID.String, detailID.String, errMsg.String
        out = append(out, a)
    }
    return out, rows.Err()
}

func nullString(s string) sql.NullString {
    return sql.NullString{String: s, Valid: s != ""}
}
