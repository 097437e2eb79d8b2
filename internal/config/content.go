package config

import (
    "bytes"
    _ "embed"
    "fmt"
    "os"

    "gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Content is the fallback copy of every page section.  It is data, not
// code: the embedded document ships with the binary and CONTENT_FILE may
// point at a replacement.
type Content struct {
    Hero       HeroCopy       `yaml:"hero"`
    GuestStars GuestStarsCopy `yaml:"guest_stars"`
    Venue      VenueCopy      `yaml:"venue"`
    Form       FormCopy       `yaml:"form"`
}

// HeroCopy is the hero section fallback.
type HeroCopy struct {
    Title    string `yaml:"title"`
    Year     string `yaml:"year"`
    Subtitle string `yaml:"subtitle"`
    Date     string `yaml:"date"`
    Location string `yaml:"location"`
    Button   string `yaml:"button"`
}

type ArtistCopy struct {
    Name  string `yaml:"name"`
    Genre string `yaml:"genre"`
    Image string `yaml:"image"`
    Day   string `yaml:"day"`
    Stage string `yaml:"stage"`
    Time  string `yaml:"time"`
}

type GuestStarsCopy struct {
    Title        string       `yaml:"title"`
    Subtitle     string       `yaml:"subtitle"`
    DefaultGenre string       `yaml:"default_genre"`
    DefaultStage string       `yaml:"default_stage"`
    DefaultDay   string       `yaml:"default_day"`
    DefaultTime  string       `yaml:"default_time"`
    Artists      []ArtistCopy `yaml:"artists"`
}

type VenueCopy struct {
    Title         string   `yaml:"title"`
    Subtitle      string   `yaml:"subtitle"`
    LocationTitle string   `yaml:"location_title"`
    Location      string   `yaml:"location"`
    Address       []string `yaml:"address"`
    CapacityTitle string   `yaml:"capacity_title"`
    Capacity      string   `yaml:"capacity"`
    CapacityDesc  string   `yaml:"capacity_desc"`
    AreaInfo      string   `yaml:"area_info"`
    ParkingTitle  string   `yaml:"parking_title"`
    Parking       string   `yaml:"parking"`
    FoodTitle     string   `yaml:"food_title"`
    Food          string   `yaml:"food"`
}

// FieldCopy is a labelled form control.  ID prefixes the editable element
// ids (<id>-label, <id>-placeholder).
type FieldCopy struct {
    ID          string `yaml:"id"`
    Label       string `yaml:"label"`
    Placeholder string `yaml:"placeholder"`
}

type FormCopy struct {
    Title           string      `yaml:"title"`
    Subtitle        string      `yaml:"subtitle"`
    CardTitle       string      `yaml:"card_title"`
    Submit          string      `yaml:"submit"`
    Fields          []FieldCopy `yaml:"fields"`
    Genders         []FieldCopy `yaml:"genders"`
    FallbackTickets []FieldCopy `yaml:"fallback_tickets"`
}

// Field returns the copy of the form control with the given id.
func (f FormCopy) Field(id string) FieldCopy {
    for _, fc := range f.Fields {
        if fc.ID == id {
            return fc
        }
    }
    return FieldCopy{ID: id}
}

// LoadContent decodes the document at path, or the embedded one when path
// is empty.  Unknown keys are rejected so a typo in an override file fails
// at startup instead of silently blanking a section.
func LoadContent(path string) (Content, error) {
    raw := defaultContent
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil {
            return Content{}, fmt.Errorf("content: %w", err)
        }
        raw = b
    }
    return ParseContent(raw)
}

// ParseContent decodes a content document.
func ParseContent(raw []byte) (Content, error) {
    var c Content
    dec := yaml.NewDecoder(bytes.NewReader(raw))
    dec.KnownFields(true)
    if err := dec.Decode(&c); err != nil {
        return Content{}, fmt.Errorf("content: decode: %w", err)
    }
    if len(c.GuestStars.Artists) == 0 {
        return Content{}, fmt.Errorf("content: guest_stars.artists must not be empty")
    }
    return c, nil
}

// DefaultContent returns the embedded document.  It panics if the embedded
// copy does not decode, which is a build defect.
func DefaultContent() Content {
    c, err := ParseContent(defaultContent)
    if err != nil {
        panic(err)
    }
    return c
}
