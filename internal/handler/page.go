package handler

import (
    "bytes"
    "net/http"
    "sync"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fest-booking/internal/booking"
    "github.com/iliyamo/fest-booking/internal/config"
    "github.com/iliyamo/fest-booking/internal/middleware"
    "github.com/iliyamo/fest-booking/internal/section"
    "github.com/iliyamo/fest-booking/internal/view"
)

// PageHandler renders the landing page.
type PageHandler struct {
    Sections       *section.Loader
    Booking        *booking.Service
    Form           config.FormCopy
    DefaultEventID string
    Logger         *logrus.Logger
    Now            func() time.Time
}

func NewPageHandler(l *section.Loader, svc *booking.Service, form config.FormCopy, defaultEventID string, logger *logrus.Logger) *PageHandler {
    return &PageHandler{Sections: l, Booking: svc, Form: form, DefaultEventID: defaultEventID, Logger: logger, Now: time.Now}
}

// Index handles GET /.  Sections and ticket types load concurrently.  A
// stored confirmation replaces the form with the success view; the
// submission is not repeated.
func (h *PageHandler) Index(c echo.Context) error {
    return h.render(c, http.StatusOK, pageIDs(c, h.DefaultEventID), formState{})
}

// formState is what a failed browser post carries back into the form.
type formState struct {
    values   booking.Form
    err      string
    problems []string
}

// renderForm shows the page again with the visitor's values and the error,
// answering a browser post that could not be booked.
func (h *PageHandler) renderForm(c echo.Context, status int, eventID string, st formState) error {
    ids := pageIDs(c, h.DefaultEventID)
    ids.EventID = eventID
    return h.render(c, status, ids, st)
}

func (h *PageHandler) render(c echo.Context, status int, ids section.IDs, st formState) error {
    ctx := c.Request().Context()
    sid := middleware.SessionID(c)

    p := view.Page{Store: sessionStore(c), EditToggle: c.QueryParam("edit") == "true"}

    conf, err := h.Booking.Confirmation(ctx, sid)
    if err != nil {
        h.Logger.WithContext(ctx).WithError(err).WithField("sid", sid).Warn("confirmation unreadable, showing the form")
    }

    var (
        wg    sync.WaitGroup
        types []booking.TicketType
    )
    if conf == nil {
        wg.Add(1)
        go func() {
            defer wg.Done()
            types = h.Booking.TicketTypes(ctx, sid, ids.EventID)
        }()
    }
    p.Sections = h.Sections.LoadPage(ctx, ids)
    wg.Wait()

    if conf != nil {
        p.Confirmation = view.NewConfirmation(*conf, ids.EventID, h.Now())
    } else {
        p.Form = view.NewFilledForm(h.Form, ids.EventID, types, h.Booking.Loaded(sid), st.values)
        p.Form.Error, p.Form.Problems = st.err, st.problems
    }

    var buf bytes.Buffer
    if err := view.Render(&buf, p); err != nil {
        h.Logger.WithContext(ctx).WithError(err).Error("page render failed")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
    }
    return c.HTMLBlob(status, buf.Bytes())
}
