package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fest-booking/internal/eventapi"
)

// TicketPrefix starts every confirmation ticket id.
const TicketPrefix = "JF2024-"

// Step names one remote call of the submission.
type Step string

const (
	StepNone         Step = ""
	StepUser         Step = "user"
	StepOrder        Step = "order"
	StepTicketDetail Step = "ticket-detail"
)

// StepError is a failed remote call.  Earlier steps have already been
// committed remotely and are not undone.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("booking: %s step: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// Remote is the part of the event API the booking uses.
type Remote interface {
	ListTicketTypes(ctx context.Context, eventID string) ([]eventapi.Ticket, error)
	UpsertUser(ctx context.Context, in eventapi.UserInput) (eventapi.Created, error)
	CreateOrder(ctx context.Context, in eventapi.OrderInput) (eventapi.Created, error)
	CreateTicketDetail(ctx context.Context, in eventapi.TicketDetailInput) (eventapi.TicketDetail, error)
}

// Attempt is what the journal records about one submission.
type Attempt struct {
	SessionID      string
	EventID        string
	LastStep       Step
	UserID         string
	OrderID        string
	TicketDetailID string
	Quantity       int
	TotalPrice     float64
	Err            string
	CreatedAt      time.Time
}

// Journal records submission outcomes, including partial ones.
type Journal interface {
	Record(ctx context.Context, a Attempt) error
}

// Confirmation is published after a successful booking.
type Confirmation struct {
	SessionID   string
	EventID     string
	Form        Form
	ConfirmedAt time.Time
}

// Publisher announces confirmed bookings.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, c Confirmation) error
}

// Result is a successful submission.
type Result struct {
	Form        Form
	RedirectURL string
}

// Service runs submissions and owns the per-visitor machines.
type Service struct {
	remote      Remote
	slot        Slot
	journal     Journal
	publisher   Publisher
	logger      *logrus.Logger
	redirectURL string
	machineTTL  time.Duration
	now         func() time.Time

	mu       sync.Mutex
	machines map[string]*machineEntry
}

type machineEntry struct {
	m        *Machine
	lastSeen time.Time
}

// DefaultMachineTTL is how long an untouched visitor machine is kept.
const DefaultMachineTTL = 24 * time.Hour

// Options wires the optional collaborators.  Nil Journal and Publisher are
// skipped.  MachineTTL defaults to DefaultMachineTTL.
type Options struct {
	Journal     Journal
	Publisher   Publisher
	RedirectURL string
	MachineTTL  time.Duration
	Now         func() time.Time
}

func NewService(remote Remote, slot Slot, logger *logrus.Logger, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.MachineTTL
	if ttl <= 0 {
		ttl = DefaultMachineTTL
	}
	return &Service{
		remote:      remote,
		slot:        slot,
		journal:     opts.Journal,
		publisher:   opts.Publisher,
		logger:      logger,
		redirectURL: opts.RedirectURL,
		machineTTL:  ttl,
		now:         now,
		machines:    map[string]*machineEntry{},
	}
}

// Machine returns the visitor's machine, creating an idle one.  Machines
// only exist for visitors that submitted or have a stored confirmation;
// anything else reads as a fresh Idle machine.
func (s *Service) Machine(sid string) *Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.machines[sid]
	if !ok {
		e = &machineEntry{m: &Machine{}}
		s.machines[sid] = e
	}
	e.lastSeen = s.now()
	return e.m
}

// peek returns the machine for sid without creating one.
func (s *Service) peek(sid string) *Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.machines[sid]; ok {
		e.lastSeen = s.now()
		return e.m
	}
	return nil
}

// Phase is the visitor's current phase; Idle when no machine exists.
func (s *Service) Phase(sid string) Phase {
	if m := s.peek(sid); m != nil {
		return m.Phase()
	}
	return Idle
}

// Loaded reports whether the visitor has no ticket-type read in flight.
func (s *Service) Loaded(sid string) bool {
	if m := s.peek(sid); m != nil {
		return m.Loaded()
	}
	return true
}

// Sweep drops machines untouched for longer than the TTL and reports how
// many were removed.  A machine with a submission in flight is kept.
func (s *Service) Sweep() int {
	cutoff := s.now().Add(-s.machineTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for sid, e := range s.machines {
		if e.lastSeen.Before(cutoff) && e.m.Phase() != Loading {
			delete(s.machines, sid)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

func (s *Service) forget(sid string) {
	s.mu.Lock()
	delete(s.machines, sid)
	s.mu.Unlock()
}

// TicketTypes loads the event's ticket types.  The Loaded flag is recorded
// on the visitor's machine when one exists; a read never creates one.  A
// failed read is logged and yields an empty list.
func (s *Service) TicketTypes(ctx context.Context, sid, eventID string) []TicketType {
	m := s.peek(sid)
	if m != nil {
		m.SetLoaded(false)
	}
	ts, err := s.remote.ListTicketTypes(ctx, eventID)
	if m != nil {
		m.SetLoaded(true)
	}
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("event_id", eventID).Warn("ticket types unavailable")
		return nil
	}
	return FromAPI(ts)
}

// Confirmation returns the persisted confirmation, if any, and moves the
// machine to Submitted when one exists.
func (s *Service) Confirmation(ctx context.Context, sid string) (*Form, error) {
	f, err := s.slot.Load(ctx, sid)
	if err != nil || f == nil {
		return nil, err
	}
	s.Machine(sid).Restore()
	return f, nil
}

// Reset clears the confirmation and returns the form to Idle.
func (s *Service) Reset(ctx context.Context, sid string) error {
	if err := s.slot.Clear(ctx, sid); err != nil {
		return err
	}
	if m := s.peek(sid); m != nil {
		m.Reset()
	}
	s.forget(sid)
	return nil
}

// Submit validates f and performs the three remote writes in order: the
// user upsert, the order and the ticket detail.  Each one must succeed
// before the next is sent.  The first failure ends the submission with a
// *StepError; nothing already written is rolled back.  On success the
// confirmation is persisted in the slot, journaled and published.
func (s *Service) Submit(ctx context.Context, sid, eventID string, f Form, types []TicketType) (Result, error) {
	m := s.Machine(sid)
	if err := m.Begin(); err != nil {
		return Result{}, err
	}
	res, err := s.submit(ctx, sid, eventID, f, types)
	if err != nil {
		m.Fail()
		return Result{}, err
	}
	m.Succeed()
	return res, nil
}

func (s *Service) submit(ctx context.Context, sid, eventID string, f Form, types []TicketType) (Result, error) {
	log := s.logger.WithContext(ctx).WithFields(logrus.Fields{"component": "booking", "sid": sid, "event_id": eventID})

	ticket := FindTicket(f.TicketType, types)
	if err := Validate(f, ticket); err != nil {
		return Result{}, err
	}
	eventNum, err := strconv.Atoi(strings.TrimSpace(eventID))
	if err != nil {
		return Result{}, &ValidationError{Problems: []string{"event_id: not a number"}}
	}

	qty := f.Quantity()
	total := ticket.Price * float64(qty)
	attempt := Attempt{SessionID: sid, EventID: eventID, Quantity: qty, TotalPrice: total, CreatedAt: s.now().UTC()}
	fail := func(step Step, err error) (Result, error) {
		attempt.Err = err.Error()
		s.record(ctx, attempt)
		log.WithError(err).WithField("step", string(step)).Error("booking failed")
		return Result{}, &StepError{Step: step, Err: err}
	}

	user, err := s.remote.UpsertUser(ctx, eventapi.UserInput{Name: f.Name, Email: f.Email, Phone: f.Phone})
	if err != nil {
		return fail(StepUser, err)
	}
	attempt.LastStep, attempt.UserID = StepUser, user.ID.String()

	order, err := s.remote.CreateOrder(ctx, eventapi.OrderInput{
		UserID:    user.ID,
		EventID:   eventNum,
		OrderDate: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Status:    "paid",
		Quantity:  qty,
		Price:     total,
		TicketID:  eventapi.ID(ticket.ID),
	})
	if err != nil {
		return fail(StepOrder, err)
	}
	attempt.LastStep, attempt.OrderID = StepOrder, order.ID.String()

	var eventDate *string
	if f.StartDate != nil {
		d := f.StartDate.Format(time.DateOnly)
		eventDate = &d
	}
	detail, err := s.remote.CreateTicketDetail(ctx, eventapi.TicketDetailInput{
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		Address:      f.Address,
		Age:          f.Age,
		Gender:       f.Gender,
		TicketStatus: "valid",
		EventDate:    eventDate,
		OrderID:      order.ID,
	})
	if err != nil {
		return fail(StepTicketDetail, err)
	}
	attempt.LastStep, attempt.TicketDetailID = StepTicketDetail, detail.ID.String()
	s.record(ctx, attempt)

	f.BookingDetails = &Details{
		TicketID:   TicketPrefix + detail.ID.String(),
		OrderID:    order.ID.String(),
		TotalPrice: total,
		Days:       1,
	}
	if err := s.slot.Save(ctx, sid, f); err != nil {
		log.WithError(err).Error("confirmation not persisted")
	}
	if s.publisher != nil {
		c := Confirmation{SessionID: sid, EventID: eventID, Form: f, ConfirmedAt: s.now().UTC()}
		if err := s.publisher.PublishBookingConfirmed(ctx, c); err != nil {
			log.WithError(err).Warn("booking.confirmed not published")
		}
	}
	log.WithField("ticket_id", f.BookingDetails.TicketID).Info("booking confirmed")
	return Result{Form: f, RedirectURL: s.redirectURL}, nil
}

func (s *Service) record(ctx context.Context, a Attempt) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, a); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("booking attempt not journaled")
	}
}
