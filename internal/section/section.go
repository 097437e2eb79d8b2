// Package section assembles the hero, guest-star and venue sections.  Each
// loader makes one read against the event API, merges the answer with the
// fallback copy and returns editable elements.  A failed read is logged and
// the fallback is used; the visitor never sees the error.
package section

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fest-booking/internal/config"
	"github.com/iliyamo/fest-booking/internal/eventapi"
)

// Source is the part of the event API the sections read.
type Source interface {
	GetEvent(ctx context.Context, eventID, merchantID string) (eventapi.Event, error)
	ListGuestStars(ctx context.Context, eventID string) ([]eventapi.Guest, error)
	GetVenue(ctx context.Context, eventID, merchantID string) (eventapi.Venue, error)
}

// IDs selects the event shown on the page.
type IDs struct {
	EventID    string `query:"event_id" json:"event_id"`
	MerchantID string `query:"merchant_id" json:"merchant_id"`
}

// WithDefaults fills empty ids with def.
func (ids IDs) WithDefaults(def string) IDs {
	if ids.EventID == "" {
		ids.EventID = def
	}
	if ids.MerchantID == "" {
		ids.MerchantID = def
	}
	return ids
}

// Loader builds section views.
type Loader struct {
	src     Source
	content config.Content
	logger  *logrus.Logger
}

func NewLoader(src Source, content config.Content, logger *logrus.Logger) *Loader {
	return &Loader{src: src, content: content, logger: logger}
}

// Page is the composed landing page.
type Page struct {
	IDs        IDs        `json:"ids"`
	Hero       Hero       `json:"hero"`
	GuestStars GuestStars `json:"guest_stars"`
	Venue      Venue      `json:"venue"`
}

// LoadPage runs the three loaders concurrently.  They are independent: one
// slow or failing source never holds back or breaks the others.
func (l *Loader) LoadPage(ctx context.Context, ids IDs) Page {
	p := Page{IDs: ids}
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		p.Hero = l.Hero(ctx, ids)
	}()
	go func() {
		defer wg.Done()
		p.GuestStars = l.GuestStars(ctx, ids.EventID)
	}()
	go func() {
		defer wg.Done()
		p.Venue = l.Venue(ctx, ids)
	}()
	wg.Wait()
	return p
}

func (l *Loader) fallback(ctx context.Context, section string, ids IDs, err error) {
	l.logger.WithContext(ctx).WithError(err).WithFields(logrus.Fields{
		"section":     section,
		"event_id":    ids.EventID,
		"merchant_id": ids.MerchantID,
	}).Warn("section source failed, using fallback copy")
}
