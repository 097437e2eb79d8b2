package section

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/iliyamo/fest-booking/internal/config"
	"github.com/iliyamo/fest-booking/internal/editable"
	"github.com/iliyamo/fest-booking/internal/eventapi"
)

// Artist is one guest-star card.  Element ids carry the card index.
type Artist struct {
	Image editable.Element `json:"image"`
	Day   editable.Element `json:"day"`
	Stage editable.Element `json:"stage"`
	Name  editable.Element `json:"name"`
	Genre editable.Element `json:"genre"`
	Time  editable.Element `json:"time"`
}

// GuestStars is the performer grid.
type GuestStars struct {
	Title    editable.Element `json:"title"`
	Subtitle editable.Element `json:"subtitle"`
	Artists  []Artist         `json:"artists"`
	Fallback bool             `json:"fallback"`
}

// GuestStars lists the performers, or the fallback line-up when the source
// fails or returns nobody.
func (l *Loader) GuestStars(ctx context.Context, eventID string) GuestStars {
	c := l.content.GuestStars
	gs := GuestStars{
		Title:    editable.New(editable.Text, "guest-stars-title", c.Title).WithClass("text-4xl md:text-6xl font-black text-card-foreground mb-4"),
		Subtitle: editable.New(editable.Text, "guest-stars-subtitle", c.Subtitle).WithClass("text-xl text-card-foreground/80 text-pretty"),
	}

	guests, err := l.src.ListGuestStars(ctx, eventID)
	if err != nil {
		l.fallback(ctx, "guest-stars", IDs{EventID: eventID}, err)
	}
	if len(guests) == 0 {
		gs.Fallback = true
		for i, a := range c.Artists {
			gs.Artists = append(gs.Artists, artistCard(i, a))
		}
		return gs
	}
	for i, g := range guests {
		gs.Artists = append(gs.Artists, artistCard(i, FromGuest(g, c)))
	}
	return gs
}

// FromGuest maps a remote guest onto card copy.  Only the first schedule is
// used.  The festival starts on the 15th, so day-of-month minus 14 gives
// the festival day, clamped to 1..3.
func FromGuest(g eventapi.Guest, c config.GuestStarsCopy) config.ArtistCopy {
	a := config.ArtistCopy{
		Name:  g.Name,
		Genre: orDefault(g.Category, c.DefaultGenre),
		Image: g.Image,
		Day:   c.DefaultDay,
		Stage: c.DefaultStage,
		Time:  c.DefaultTime,
	}
	if len(g.Schedules) == 0 {
		return a
	}
	s := g.Schedules[0]
	a.Stage = orDefault(s.Stage, c.DefaultStage)
	a.Day = fmt.Sprintf("Hari %d", festivalDay(s.ScheduleDate))
	a.Time = clock(s.StartTime) + " - " + clock(s.EndTime)
	return a
}

func festivalDay(date string) int {
	d, ok := eventapi.ParseDate(date)
	if !ok {
		return 1
	}
	return min(3, max(1, d.Day()-14))
}

func clock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// PerformerPlaceholder is the generated image for a guest without a photo.
func PerformerPlaceholder(name string) string {
	q := strings.ReplaceAll(url.QueryEscape(name+" performer"), "+", "%20")
	return editable.ImagePlaceholder + "?height=300&width=400&query=" + q
}

func artistCard(i int, a config.ArtistCopy) Artist {
	img := PerformerPlaceholder(a.Name)
	if a.Image != "" {
		img = UploadURL(a.Image)
	}
	id := func(field string) string { return fmt.Sprintf("artist-%s-%d", field, i) }
	return Artist{
		Image: editable.Element{Kind: editable.Image, ID: id("image"), Default: img, Alt: a.Name,
			Class: "w-full h-64 object-cover group-hover:scale-110 transition-transform duration-300"},
		Day:   editable.New(editable.Text, id("day"), a.Day).WithClass("block bg-gradient-to-r from-orange-500 to-orange-600 text-white font-bold px-3 py-1 rounded-full text-sm shadow-lg"),
		Stage: editable.New(editable.Text, id("stage"), a.Stage).WithClass("block bg-slate-800/90 text-white font-medium px-3 py-1 rounded-full text-xs shadow-md backdrop-blur-sm"),
		Name:  editable.New(editable.Text, id("name"), a.Name).WithClass("text-2xl font-bold text-card-foreground mb-2"),
		Genre: editable.New(editable.Text, id("genre"), a.Genre).WithClass("text-card-foreground/70 font-medium mb-3"),
		Time:  editable.New(editable.Text, id("time"), a.Time).WithClass("text-card-foreground/80 font-medium"),
	}
}
