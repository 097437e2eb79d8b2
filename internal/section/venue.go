package section

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iliyamo/fest-booking/internal/editable"
)

// Venue is the venue info block.
type Venue struct {
	Title           editable.Element `json:"title"`
	Subtitle        editable.Element `json:"subtitle"`
	Image           editable.Element `json:"image"`
	LocationTitle   editable.Element `json:"location_title"`
	LocationDetails editable.Element `json:"location_details"`
	CapacityTitle   editable.Element `json:"capacity_title"`
	CapacityNumber  editable.Element `json:"capacity_number"`
	CapacityDesc    editable.Element `json:"capacity_desc"`
	AreaInfo        editable.Element `json:"area_info"`
	ParkingTitle    editable.Element `json:"parking_title"`
	ParkingInfo     editable.Element `json:"parking_info"`
	FoodTitle       editable.Element `json:"food_title"`
	FoodInfo        editable.Element `json:"food_info"`
}

var capacityPrinter = message.NewPrinter(language.English)

// FormatCapacity groups thousands with commas: 50000 → "50,000".
func FormatCapacity(n int64) string { return capacityPrinter.Sprintf("%d", n) }

// Venue reads the venue record and builds the block.
func (l *Loader) Venue(ctx context.Context, ids IDs) Venue {
	c := l.content.Venue
	location, capacity, parking, food, image := c.Location, c.Capacity, c.Parking, c.Food, ""

	v, err := l.src.GetVenue(ctx, ids.EventID, ids.MerchantID)
	if err != nil {
		l.fallback(ctx, "venue", ids, err)
	} else {
		location = orDefault(v.Location, location)
		if v.Capacity > 0 {
			capacity = FormatCapacity(v.Capacity)
		}
		if v.Facilities != nil {
			parking = orDefault(v.Facilities.Parking, parking)
			food = orDefault(v.Facilities.FoodCourt, food)
		}
		image = v.ImageVenue
	}
	details := strings.Join(append([]string{location}, c.Address...), "\n")

	return Venue{
		Title:           editable.New(editable.Text, "venue-title", c.Title).WithClass("text-4xl md:text-6xl font-black text-foreground mb-4"),
		Subtitle:        editable.New(editable.Text, "venue-subtitle", c.Subtitle).WithClass("text-xl text-foreground/80 text-pretty"),
		Image:           editable.Element{Kind: editable.Image, ID: "venue-image", Default: UploadURL(image), Alt: "Venue", Class: "w-full h-96 object-cover rounded-lg shadow-lg"},
		LocationTitle:   editable.New(editable.Text, "venue-location-title", c.LocationTitle),
		LocationDetails: editable.New(editable.Textarea, "venue-location-details", details).WithClass("text-card-foreground/80 text-lg whitespace-pre-line"),
		CapacityTitle:   editable.New(editable.Text, "venue-capacity-title", c.CapacityTitle),
		CapacityNumber:  editable.New(editable.Text, "venue-capacity-number", capacity).WithClass("font-bold text-primary text-2xl inline"),
		CapacityDesc:    editable.New(editable.Text, "venue-capacity-desc", c.CapacityDesc).WithClass("inline"),
		AreaInfo:        editable.New(editable.Text, "venue-area-info", c.AreaInfo),
		ParkingTitle:    editable.New(editable.Text, "venue-parking-title", c.ParkingTitle),
		ParkingInfo:     editable.New(editable.Text, "venue-parking-info", parking).WithClass("text-card-foreground/80"),
		FoodTitle:       editable.New(editable.Text, "venue-food-title", c.FoodTitle),
		FoodInfo:        editable.New(editable.Text, "venue-food-info", food).WithClass("text-card-foreground/80"),
	}
}
