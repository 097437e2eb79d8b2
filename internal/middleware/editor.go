package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/iliyamo/fest-booking/internal/editing"
)

// RequireEditMode aborts with 403 unless the visitor's editing store is in
// edit mode.  It must run after Session, which puts the store in scope.
func RequireEditMode() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            s, err := editing.FromContext(c.Request().Context())
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no editing store"})
            }
            if !s.EditMode() {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "edit mode is off"})
            }
            return next(c)
        }
    }
}
