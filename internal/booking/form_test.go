package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	start := day(16)
	return Form{
		Name: "Budi Santoso", Phone: "081234567890", Email: "budi@example.com",
		Address: "Jl. Merdeka 1, Jakarta", TicketQuantity: "2",
		TicketType: decemberTicket.DisplayText(), Age: "27", Gender: "Laki-laki",
		StartDate: &start,
	}
}

func TestSelectTicket_ResetsQuantityAndDates(t *testing.T) {
	types := []TicketType{decemberTicket, {ID: "8", TicketType: "VIP", Price: 750000, QuantityAvailable: 5}}
	f := validForm()
	end := day(17)
	f.EndDate = &end
	f.TicketQuantity = "5"

	f.SelectTicket("VIP - Rp 750.000", types)
	assert.Equal(t, "", f.TicketQuantity)
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
	require.NotNil(t, f.Selected())
	assert.Equal(t, 5, f.MaxQuantity())
	assert.False(t, f.DatesDisabled(true))
	assert.True(t, f.DatesDisabled(false))

	f.SelectTicket("unknown", types)
	assert.Nil(t, f.Selected())
	assert.Equal(t, DefaultMaxQuantity, f.MaxQuantity())
	assert.True(t, f.DatesDisabled(true))
	assert.False(t, f.QuantityDisabled(true))
}

func TestBind_KeepsValues(t *testing.T) {
	types := []TicketType{decemberTicket}
	f := validForm()
	start := day(16)
	f.StartDate = &start
	f.Bind(types)
	require.NotNil(t, f.Selected())
	assert.Equal(t, "2", f.TicketQuantity)
	assert.Equal(t, &start, f.StartDate)
	assert.False(t, f.DatesDisabled(true))
	assert.Equal(t, decemberTicket.QuantityAvailable, f.MaxQuantity())
}

func TestQuantityDisabled(t *testing.T) {
	var f Form
	assert.True(t, f.QuantityDisabled(true))
	f.TicketType = "x"
	assert.True(t, f.QuantityDisabled(false))
	assert.False(t, f.QuantityDisabled(true))
}

func TestValidate(t *testing.T) {
	tk := decemberTicket
	require.NoError(t, Validate(validForm(), &tk))

	f := validForm()
	f.Email = "not-an-email"
	f.Gender = "x"
	var ve *ValidationError
	require.ErrorAs(t, Validate(f, &tk), &ve)
	assert.Len(t, ve.Problems, 2)

	f = validForm()
	f.TicketQuantity = "41"
	assert.Error(t, Validate(f, &tk))

	f = validForm()
	early := day(14)
	f.StartDate = &early
	assert.Error(t, Validate(f, &tk))

	f = validForm()
	f.Age = "9"
	assert.Error(t, Validate(f, &tk))

	assert.Error(t, Validate(validForm(), nil))
}

func TestValidate_EndBeforeStart(t *testing.T) {
	tk := decemberTicket
	f := validForm()
	end := day(15)
	f.EndDate = &end
	err := Validate(f, &tk)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before StartDate")
}

func TestMachine(t *testing.T) {
	var m Machine
	assert.Equal(t, Idle, m.Phase())
	require.NoError(t, m.Begin())
	assert.ErrorIs(t, m.Begin(), ErrBusy)
	m.Fail()
	assert.Equal(t, Idle, m.Phase())

	require.NoError(t, m.Begin())
	m.Succeed()
	assert.Equal(t, Submitted, m.Phase())
	assert.ErrorIs(t, m.Begin(), ErrSubmitted)
	m.Reset()
	assert.Equal(t, Idle, m.Phase())

	m.Restore()
	assert.Equal(t, "submitted", m.Phase().String())
	m.Fail()
	assert.Equal(t, Submitted, m.Phase())
}

func TestQRPayload(t *testing.T) {
	f := validForm()
	f.BookingDetails = &Details{TicketID: "JF2024-12", OrderID: "5", TotalPrice: 700000, Days: 1}
	p := QRPayload(f, "3", time.Now())
	assert.JSONEq(t, `{"ticketId":"JF2024-12","orderId":"5","name":"Budi Santoso","email":"budi@example.com",
		"ticketType":"Regular - Rp 350.000","quantity":"2","totalPrice":700000,"days":1,"event":"Event 3"}`, p)
	assert.Contains(t, QRImageURL(p), "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=%7B")

	bare := QRPayload(Form{Name: "A"}, "3", time.UnixMilli(1733980123456))
	assert.Contains(t, bare, `"ticketId":"JF2024-123456"`)
}
