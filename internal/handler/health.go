// Package handler exposes the HTTP handlers of the festival site: the
// rendered page, the section and booking APIs, the edit-mode endpoints and
// the image storage shim.
package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is the liveness probe used by load balancers.  It only reports that
// the process serves requests; the event API is not contacted.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
