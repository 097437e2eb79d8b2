package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fest-booking/internal/section"
)

// SectionHandler serves the section views as JSON.  The views carry element
// ids, kinds and defaults; per-visitor overrides are applied on render.
type SectionHandler struct {
    Loader         *section.Loader
    DefaultEventID string
}

func NewSectionHandler(l *section.Loader, defaultEventID string) *SectionHandler {
    return &SectionHandler{Loader: l, DefaultEventID: defaultEventID}
}

// Hero handles GET /v1/sections/hero.
func (h *SectionHandler) Hero(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Loader.Hero(c.Request().Context(), pageIDs(c, h.DefaultEventID)))
}

// GuestStars handles GET /v1/sections/guest-stars.
func (h *SectionHandler) GuestStars(c echo.Context) error {
    ids := pageIDs(c, h.DefaultEventID)
    return c.JSON(http.StatusOK, h.Loader.GuestStars(c.Request().Context(), ids.EventID))
}

// Venue handles GET /v1/sections/venue.
func (h *SectionHandler) Venue(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Loader.Venue(c.Request().Context(), pageIDs(c, h.DefaultEventID)))
}
