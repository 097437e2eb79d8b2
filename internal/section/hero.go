package section

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/fest-booking/internal/editable"
	"github.com/iliyamo/fest-booking/internal/eventapi"
)

// UploadURL is how images stored by the upload shim are addressed.  With
// no file it is the placeholder image.
func UploadURL(file string) string {
	if strings.TrimSpace(file) == "" {
		return editable.ImagePlaceholder
	}
	return "/api/upload?file=" + file
}

// Hero is the top banner.
type Hero struct {
	Background editable.Element `json:"background"`
	Title      editable.Element `json:"title"`
	Year       editable.Element `json:"year"`
	Subtitle   editable.Element `json:"subtitle"`
	Date       editable.Element `json:"date"`
	Location   editable.Element `json:"location"`
	Button     editable.Element `json:"button"`
	// BackgroundImage is the hero image from the event record, empty when
	// the event could not be read.
	BackgroundImage string `json:"background_image,omitempty"`
}

// HeroFields lists the ids the bulk hero editor may write.
var HeroFields = []string{"hero-title", "hero-year", "hero-subtitle", "hero-date", "hero-location", "hero-background"}

// Hero reads the event and builds the banner.
func (l *Loader) Hero(ctx context.Context, ids IDs) Hero {
	c := l.content.Hero
	title, subtitle, date, location, image := c.Title, c.Subtitle, c.Date, c.Location, ""

	ev, err := l.src.GetEvent(ctx, ids.EventID, ids.MerchantID)
	if err != nil {
		l.fallback(ctx, "hero", ids, err)
	} else {
		title = orDefault(ev.Name, title)
		subtitle = orDefault(ev.Description, subtitle)
		location = orDefault(ev.Location, location)
		date = FormatEventDate(ev.StartDate, ev.EndDate, c.Date)
		image = ev.HeroImage
	}

	return Hero{
		Background:      editable.Element{Kind: editable.Image, ID: "hero-background", Default: UploadURL(image), Class: "w-full h-full object-cover", Alt: "Hero background"},
		Title:           editable.New(editable.Text, "hero-title", title).WithClass("text-6xl md:text-8xl font-black text-white mb-6 text-balance"),
		Year:            editable.New(editable.Text, "hero-year", c.Year).WithClass("block text-4xl md:text-6xl text-primary font-bold mt-2 mb-6"),
		Subtitle:        editable.New(editable.Text, "hero-subtitle", subtitle).WithClass("text-xl md:text-2xl text-white/90 mb-8 font-medium text-pretty"),
		Date:            editable.New(editable.Text, "hero-date", date).WithClass("font-semibold"),
		Location:        editable.New(editable.Text, "hero-location", location).WithClass("font-semibold"),
		Button:          editable.New(editable.Button, "hero-button", c.Button).WithClass("text-lg font-bold cursor-pointer"),
		BackgroundImage: image,
	}
}

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatEventDate renders "D1-D2 <bulan> YYYY" using the month and year of
// the start date.  Missing or unparsable dates yield fallback.
func FormatEventDate(start, end, fallback string) string {
	s, ok1 := eventapi.ParseDate(start)
	e, ok2 := eventapi.ParseDate(end)
	if !ok1 || !ok2 {
		return fallback
	}
	return fmt.Sprintf("%d-%d %s %d", s.Day(), e.Day(), bulan[s.Month()-1], s.Year())
}

// LongDate renders a single day as "D <bulan> YYYY".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), bulan[t.Month()-1], t.Year())
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
