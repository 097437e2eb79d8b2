package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fest-booking/internal/eventapi"
)

var decemberTicket = TicketType{
	ID: "7", TicketType: "Regular", Price: 350000, QuantityAvailable: 40,
	ValidFromDate: "2024-12-15", ValidToDate: "2024-12-17T23:59:59Z",
}

func day(d int) time.Time { return time.Date(2024, time.December, d, 0, 0, 0, 0, time.UTC) }

func TestDisplayText(t *testing.T) {
	assert.Equal(t, "Regular - Rp 350.000", decemberTicket.DisplayText())
	vvip := TicketType{TicketType: "VVIP", Price: 1250000}
	assert.Equal(t, "VVIP - Rp 1.250.000", vvip.DisplayText())
}

func TestAvailability(t *testing.T) {
	assert.Equal(t, "(Sold Out)", TicketType{}.Availability())
	assert.True(t, TicketType{}.SoldOut())
	assert.Equal(t, "(Tersisa 40)", decemberTicket.Availability())
	assert.Equal(t, "", TicketType{QuantityAvailable: 101}.Availability())
}

func TestDateAllowed_InclusiveWindow(t *testing.T) {
	tk := decemberTicket
	assert.False(t, DateAllowed(&tk, day(14)))
	assert.True(t, DateAllowed(&tk, day(15)))
	assert.True(t, DateAllowed(&tk, day(16)))
	assert.True(t, DateAllowed(&tk, day(17).Add(22*time.Hour)))
	assert.False(t, DateAllowed(&tk, day(18)))
	assert.False(t, DateAllowed(nil, day(16)))
}

func TestCalendar(t *testing.T) {
	tk := decemberTicket
	days := Calendar(&tk, day(3))
	require.Len(t, days, 31)
	var enabled []string
	for _, d := range days {
		if d.Enabled {
			enabled = append(enabled, d.Date)
		}
	}
	assert.Equal(t, []string{"2024-12-15", "2024-12-16", "2024-12-17"}, enabled)
}

func TestFindTicket(t *testing.T) {
	types := []TicketType{decemberTicket, {ID: "8", TicketType: "VIP", Price: 750000}}
	assert.Equal(t, "8", FindTicket("VIP - Rp 750.000", types).ID)
	assert.Equal(t, "7", FindTicket("regular", types).ID)
	assert.Nil(t, FindTicket("Festival Pass", types))
	assert.Nil(t, FindTicket("", types))
}

func TestFromAPI(t *testing.T) {
	out := FromAPI([]eventapi.Ticket{{ID: "5", TicketType: "VIP", Price: 750000, QuantityAvailable: 3}})
	require.Len(t, out, 1)
	assert.Equal(t, "5", out[0].ID)
	assert.Equal(t, 3, out[0].QuantityAvailable)
}
