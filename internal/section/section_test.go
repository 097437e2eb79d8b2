package section

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fest-booking/internal/applog"
	"github.com/iliyamo/fest-booking/internal/config"
	"github.com/iliyamo/fest-booking/internal/editable"
	"github.com/iliyamo/fest-booking/internal/editing"
	"github.com/iliyamo/fest-booking/internal/eventapi"
)

type fakeSource struct {
	event    eventapi.Event
	eventErr error
	guests   []eventapi.Guest
	guestErr error
	venue    eventapi.Venue
	venueErr error
	delay    time.Duration
	calls    atomic.Int32
}

func (f *fakeSource) GetEvent(ctx context.Context, eventID, merchantID string) (eventapi.Event, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	return f.event, f.eventErr
}

func (f *fakeSource) ListGuestStars(ctx context.Context, eventID string) ([]eventapi.Guest, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	return f.guests, f.guestErr
}

func (f *fakeSource) GetVenue(ctx context.Context, eventID, merchantID string) (eventapi.Venue, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	return f.venue, f.venueErr
}

var ids = IDs{EventID: "3", MerchantID: "3"}

func newLoader(src Source) *Loader {
	return NewLoader(src, config.DefaultContent(), applog.Discard())
}

func TestHero_FromEvent(t *testing.T) {
	l := newLoader(&fakeSource{event: eventapi.Event{
		Name: "BALI FEST", StartDate: "2025-03-07T00:00:00.000Z", EndDate: "2025-03-09", HeroImage: "hero.jpg",
	}})
	h := l.Hero(context.Background(), ids)
	assert.Equal(t, "BALI FEST", h.Title.Default)
	assert.Equal(t, "7-9 Maret 2025", h.Date.Default)
	assert.Equal(t, "Jakarta International Expo", h.Location.Default)
	assert.Equal(t, "/api/upload?file=hero.jpg", h.Background.Default)
	assert.Equal(t, "2024", h.Year.Default)
}

func TestHero_FallbackOnError(t *testing.T) {
	l := newLoader(&fakeSource{eventErr: errors.New("connection refused")})
	h := l.Hero(context.Background(), ids)
	assert.Equal(t, "JAKARTA FEST", h.Title.Default)
	assert.Equal(t, "15-17 Desember 2024", h.Date.Default)
	assert.Equal(t, "Dapatkan Tiket Sekarang", h.Button.Default)
	assert.Equal(t, editable.ImagePlaceholder, h.Background.Default)
}

func TestHero_NoImageUsesPlaceholder(t *testing.T) {
	h := newLoader(&fakeSource{event: eventapi.Event{Name: "BALI FEST"}}).Hero(context.Background(), ids)
	assert.Equal(t, "/placeholder.svg", h.Background.Default)
	assert.Equal(t, "/api/upload?file=x.png", UploadURL("x.png"))
}

func TestHero_StoreOverridesDefault(t *testing.T) {
	l := newLoader(&fakeSource{event: eventapi.Event{Name: "BALI FEST"}})
	s := editing.NewStore()
	s.Set("hero-title", editing.TextValue("SURABAYA FEST"))
	h := l.Hero(context.Background(), ids)
	assert.Equal(t, "SURABAYA FEST", h.Title.Resolve(s))
	assert.Equal(t, "15-17 Desember 2024", h.Date.Resolve(s))
}

func TestFormatEventDate(t *testing.T) {
	assert.Equal(t, "15-17 Desember 2024", FormatEventDate("2024-12-15", "2024-12-17", "x"))
	assert.Equal(t, "x", FormatEventDate("", "2024-12-17", "x"))
	assert.Equal(t, "x", FormatEventDate("soon", "later", "x"))
}

func TestGuestStars_Mapping(t *testing.T) {
	l := newLoader(&fakeSource{guests: []eventapi.Guest{
		{Name: "Raisa", Category: "Pop", Image: "raisa.jpg", Schedules: []eventapi.GuestSchedule{
			{ScheduleDate: "2024-12-16", Stage: "Stage B", StartTime: "20:00:00", EndTime: "21:15:00"},
		}},
		{Name: "Nadin Amizah"},
		{Name: "Late", Schedules: []eventapi.GuestSchedule{{ScheduleDate: "2024-12-28", StartTime: "18:00", EndTime: "19:00"}}},
	}})
	gs := l.GuestStars(context.Background(), "3")
	require.Len(t, gs.Artists, 3)
	assert.False(t, gs.Fallback)

	a := gs.Artists[0]
	assert.Equal(t, "artist-day-0", a.Day.ID)
	assert.Equal(t, "Hari 2", a.Day.Default)
	assert.Equal(t, "Stage B", a.Stage.Default)
	assert.Equal(t, "20:00 - 21:15", a.Time.Default)
	assert.Equal(t, "/api/upload?file=raisa.jpg", a.Image.Default)

	b := gs.Artists[1]
	assert.Equal(t, "Music", b.Genre.Default)
	assert.Equal(t, "Hari 1", b.Day.Default)
	assert.Equal(t, "Main Stage", b.Stage.Default)
	assert.Equal(t, "19:00 - 20:30", b.Time.Default)
	assert.Equal(t, "/placeholder.svg?height=300&width=400&query=Nadin%20Amizah%20performer", b.Image.Default)

	assert.Equal(t, "Hari 3", gs.Artists[2].Day.Default)
	assert.Equal(t, "artist-name-2", gs.Artists[2].Name.ID)
}

func TestGuestStars_FallbackLineUp(t *testing.T) {
	for _, src := range []*fakeSource{{}, {guestErr: errors.New("503")}} {
		gs := newLoader(src).GuestStars(context.Background(), "3")
		require.Len(t, gs.Artists, 6)
		assert.True(t, gs.Fallback)
		assert.Equal(t, "Tulus", gs.Artists[1].Name.Default)
		assert.Equal(t, "Acoustic Stage", gs.Artists[1].Stage.Default)
	}
}

func TestVenue(t *testing.T) {
	l := newLoader(&fakeSource{venue: eventapi.Venue{
		Location: "GBK Senayan", Capacity: 75000, ImageVenue: "gbk.png",
		Facilities: &eventapi.Facilities{Parking: "2,000 slot"},
	}})
	v := l.Venue(context.Background(), ids)
	assert.Equal(t, "75,000", v.CapacityNumber.Default)
	assert.Equal(t, "GBK Senayan\nJl. Boulevard Barat Raya, Kelapa Gading\nJakarta Utara 14240", v.LocationDetails.Default)
	assert.Equal(t, "2,000 slot", v.ParkingInfo.Default)
	assert.Equal(t, "50+ tenant makanan & minuman", v.FoodInfo.Default)
	assert.Equal(t, "/api/upload?file=gbk.png", v.Image.Default)
}

func TestVenue_Fallback(t *testing.T) {
	v := newLoader(&fakeSource{venueErr: errors.New("timeout")}).Venue(context.Background(), ids)
	assert.Equal(t, "50,000", v.CapacityNumber.Default)
	assert.Equal(t, "Jakarta International Expo (JIExpo)\nJl. Boulevard Barat Raya, Kelapa Gading\nJakarta Utara 14240", v.LocationDetails.Default)
	assert.Equal(t, "5,000+ slot parkir tersedia", v.ParkingInfo.Default)
	assert.Equal(t, editable.ImagePlaceholder, v.Image.Default)
}

func TestLoadPage_Concurrent(t *testing.T) {
	src := &fakeSource{delay: 50 * time.Millisecond, eventErr: errors.New("down")}
	start := time.Now()
	p := newLoader(src).LoadPage(context.Background(), ids)
	assert.Less(t, time.Since(start), 140*time.Millisecond)
	assert.Equal(t, int32(3), src.calls.Load())
	assert.Equal(t, "JAKARTA FEST", p.Hero.Title.Default)
	assert.Len(t, p.GuestStars.Artists, 6)
	assert.Equal(t, "VENUE INFO", p.Venue.Title.Default)
}

func TestIDs_WithDefaults(t *testing.T) {
	assert.Equal(t, IDs{EventID: "3", MerchantID: "3"}, IDs{}.WithDefaults("3"))
	assert.Equal(t, IDs{EventID: "9", MerchantID: "3"}, IDs{EventID: "9"}.WithDefaults("3"))
}
