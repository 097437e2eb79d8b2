package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fest-booking/internal/applog"
	"github.com/iliyamo/fest-booking/internal/eventapi"
)

type fakeRemote struct {
	calls     []string
	failAt    string
	orders    []eventapi.OrderInput
	details   []eventapi.TicketDetailInput
	ticketErr error
}

func (f *fakeRemote) step(name string) error {
	f.calls = append(f.calls, name)
	if f.failAt == name {
		return &eventapi.APIError{Op: name, StatusCode: 500, Body: "boom"}
	}
	return nil
}

func (f *fakeRemote) ListTicketTypes(ctx context.Context, eventID string) ([]eventapi.Ticket, error) {
	return []eventapi.Ticket{{ID: "7", TicketType: "Regular", Price: 350000, QuantityAvailable: 40,
		ValidFromDate: "2024-12-15", ValidToDate: "2024-12-17"}}, f.ticketErr
}

func (f *fakeRemote) UpsertUser(ctx context.Context, in eventapi.UserInput) (eventapi.Created, error) {
	return eventapi.Created{ID: "41"}, f.step("user")
}

func (f *fakeRemote) CreateOrder(ctx context.Context, in eventapi.OrderInput) (eventapi.Created, error) {
	f.orders = append(f.orders, in)
	return eventapi.Created{ID: "900"}, f.step("order")
}

func (f *fakeRemote) CreateTicketDetail(ctx context.Context, in eventapi.TicketDetailInput) (eventapi.TicketDetail, error) {
	f.details = append(f.details, in)
	return eventapi.TicketDetail{ID: "12"}, f.step("ticket-detail")
}

type fakeJournal struct{ attempts []Attempt }

func (j *fakeJournal) Record(ctx context.Context, a Attempt) error {
	j.attempts = append(j.attempts, a)
	return nil
}

type fakePublisher struct{ got []Confirmation }

func (p *fakePublisher) PublishBookingConfirmed(ctx context.Context, c Confirmation) error {
	p.got = append(p.got, c)
	return nil
}

var fixedNow = time.Date(2024, time.December, 1, 9, 30, 0, 0, time.UTC)

func newService(r Remote, slot Slot, j Journal, p Publisher) *Service {
	return NewService(r, slot, applog.Discard(), Options{
		Journal: j, Publisher: p,
		RedirectURL: "http://localhost:3001/payment/review-transaction",
		Now:         func() time.Time { return fixedNow },
	})
}

func TestSubmit_Success(t *testing.T) {
	remote := &fakeRemote{}
	slot := NewMemorySlot()
	journal := &fakeJournal{}
	pub := &fakePublisher{}
	svc := newService(remote, slot, journal, pub)
	ctx := context.Background()
	types := svc.TicketTypes(ctx, "sid-1", "3")
	assert.True(t, svc.Loaded("sid-1"))

	res, err := svc.Submit(ctx, "sid-1", "3", validForm(), types)
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "order", "ticket-detail"}, remote.calls)
	assert.Equal(t, "http://localhost:3001/payment/review-transaction", res.RedirectURL)
	assert.Equal(t, &Details{TicketID: "JF2024-12", OrderID: "900", TotalPrice: 700000, Days: 1}, res.Form.BookingDetails)

	o := remote.orders[0]
	assert.Equal(t, eventapi.ID("41"), o.UserID)
	assert.Equal(t, 3, o.EventID)
	assert.Equal(t, "paid", o.Status)
	assert.Equal(t, 2, o.Quantity)
	assert.Equal(t, float64(700000), o.Price)
	assert.Equal(t, eventapi.ID("7"), o.TicketID)
	assert.Equal(t, "2024-12-01T09:30:00.000Z", o.OrderDate)

	d := remote.details[0]
	assert.Equal(t, "valid", d.TicketStatus)
	require.NotNil(t, d.EventDate)
	assert.Equal(t, "2024-12-16", *d.EventDate)
	assert.Equal(t, eventapi.ID("900"), d.OrderID)

	saved, err := slot.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "JF2024-12", saved.BookingDetails.TicketID)
	assert.Equal(t, Submitted, svc.Machine("sid-1").Phase())
	require.Len(t, journal.attempts, 1)
	assert.Equal(t, StepTicketDetail, journal.attempts[0].LastStep)
	require.Len(t, pub.got, 1)
	assert.Equal(t, "sid-1", pub.got[0].SessionID)
}

func TestSubmit_ThirdStepFails(t *testing.T) {
	remote := &fakeRemote{failAt: "ticket-detail"}
	slot := NewMemorySlot()
	journal := &fakeJournal{}
	svc := newService(remote, slot, journal, nil)
	types := svc.TicketTypes(context.Background(), "sid-2", "3")

	res, err := svc.Submit(context.Background(), "sid-2", "3", validForm(), types)
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StepTicketDetail, se.Step)
	var apiErr *eventapi.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Empty(t, res.RedirectURL)
	assert.Equal(t, []string{"user", "order", "ticket-detail"}, remote.calls)

	saved, _ := slot.Load(context.Background(), "sid-2")
	assert.Nil(t, saved)
	assert.Equal(t, Idle, svc.Machine("sid-2").Phase())
	require.Len(t, journal.attempts, 1)
	assert.Equal(t, StepOrder, journal.attempts[0].LastStep)
	assert.Equal(t, "900", journal.attempts[0].OrderID)
	assert.NotEmpty(t, journal.attempts[0].Err)
}

func TestSubmit_FirstStepFailureStopsSequence(t *testing.T) {
	remote := &fakeRemote{failAt: "user"}
	svc := newService(remote, NewMemorySlot(), nil, nil)
	types := svc.TicketTypes(context.Background(), "s", "3")
	_, err := svc.Submit(context.Background(), "s", "3", validForm(), types)
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StepUser, se.Step)
	assert.Equal(t, []string{"user"}, remote.calls)
}

func TestSubmit_InvalidFormSendsNothing(t *testing.T) {
	remote := &fakeRemote{}
	svc := newService(remote, NewMemorySlot(), nil, nil)
	f := validForm()
	f.Name = ""
	_, err := svc.Submit(context.Background(), "s", "3", f, FromAPI(nil))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, remote.calls)
	assert.Equal(t, Idle, svc.Machine("s").Phase())
}

func TestSubmit_RejectsWhileBusy(t *testing.T) {
	svc := newService(&fakeRemote{}, NewMemorySlot(), nil, nil)
	require.NoError(t, svc.Machine("s").Begin())
	_, err := svc.Submit(context.Background(), "s", "3", validForm(), nil)
	assert.ErrorIs(t, err, ErrBusy)
}

func TestConfirmationRestoreAndReset(t *testing.T) {
	slot := NewMemorySlot()
	f := validForm()
	f.BookingDetails = &Details{TicketID: "JF2024-1"}
	require.NoError(t, slot.Save(context.Background(), "s", f))

	remote := &fakeRemote{}
	svc := newService(remote, slot, nil, nil)
	got, err := svc.Confirmation(context.Background(), "s")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "JF2024-1", got.BookingDetails.TicketID)
	assert.Equal(t, Submitted, svc.Machine("s").Phase())
	assert.Empty(t, remote.calls)

	require.NoError(t, svc.Reset(context.Background(), "s"))
	got, err = svc.Confirmation(context.Background(), "s")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, Idle, svc.Machine("s").Phase())
}

func TestTicketTypes_FailureIsEmpty(t *testing.T) {
	svc := newService(&fakeRemote{ticketErr: errors.New("down")}, NewMemorySlot(), nil, nil)
	assert.Empty(t, svc.TicketTypes(context.Background(), "s", "3"))
	assert.True(t, svc.Loaded("s"))
}

func TestRedisSlot(t *testing.T) {
	db, mock := redismock.NewClientMock()
	slot := NewRedisSlot(db, 0)
	ctx := context.Background()

	mock.ExpectGet("transactionData:abc").RedisNil()
	f, err := slot.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, f)

	form := Form{Name: "Budi", TicketQuantity: "2", BookingDetails: &Details{TicketID: "JF2024-3", Days: 1}}
	bs, _ := json.Marshal(form)
	mock.ExpectSet("transactionData:abc", bs, 0).SetVal("OK")
	require.NoError(t, slot.Save(ctx, "abc", form))

	mock.ExpectGet("transactionData:abc").SetVal(string(bs))
	f, err = slot.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "JF2024-3", f.BookingDetails.TicketID)

	mock.ExpectDel("transactionData:abc").SetVal(1)
	require.NoError(t, slot.Clear(ctx, "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func (s *Service) machineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.machines)
}

func TestTicketTypes_DoesNotKeepMachines(t *testing.T) {
	svc := newService(&fakeRemote{}, NewMemorySlot(), nil, nil)
	for i := 0; i < 1000; i++ {
		svc.TicketTypes(context.Background(), fmt.Sprintf("anon-%d", i), "3")
	}
	assert.Equal(t, 0, svc.machineCount())
	assert.True(t, svc.Loaded("anon-1"))
	assert.Equal(t, Idle, svc.Phase("anon-1"))
	assert.Equal(t, 0, svc.machineCount())
}

func TestSweep_DropsIdleMachines(t *testing.T) {
	now := fixedNow
	svc := NewService(&fakeRemote{}, NewMemorySlot(), applog.Discard(), Options{
		MachineTTL: time.Hour,
		Now:        func() time.Time { return now },
	})
	svc.Machine("old").Restore()
	require.NoError(t, svc.Machine("busy").Begin())
	now = now.Add(2 * time.Hour)
	svc.Machine("fresh")

	assert.Equal(t, 1, svc.Sweep())
	assert.Equal(t, 2, svc.machineCount())
	assert.Equal(t, Loading, svc.Phase("busy"))
	assert.Equal(t, Idle, svc.Phase("old"))
}
