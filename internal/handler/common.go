package handler

import (
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fest-booking/internal/editing"
    "github.com/iliyamo/fest-booking/internal/section"
)

// pageIDs reads event_id and merchant_id from the query, defaulting both.
func pageIDs(c echo.Context, def string) section.IDs {
    return section.IDs{
        EventID:    strings.TrimSpace(c.QueryParam("event_id")),
        MerchantID: strings.TrimSpace(c.QueryParam("merchant_id")),
    }.WithDefaults(def)
}

// wantsJSON is true for API clients.  Browser form posts get redirects.
func wantsJSON(c echo.Context) bool {
    r := c.Request()
    return strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
        strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// sessionStore returns the editing store in scope, or a throwaway one so a
// render never fails for lack of a session.
func sessionStore(c echo.Context) *editing.Store {
    if s, err := editing.FromContext(c.Request().Context()); err == nil {
        return s
    }
    return editing.NewStore()
}
