package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fest-booking/internal/booking"
    "github.com/iliyamo/fest-booking/internal/config"
    "github.com/iliyamo/fest-booking/internal/eventapi"
    "github.com/iliyamo/fest-booking/internal/middleware"
)

// BookingHandler exposes the booking form protocol.  Page, when set,
// re-renders the form for browser posts that fail.
type BookingHandler struct {
    Service        *booking.Service
    Page           *PageHandler
    Fallback       []config.FieldCopy
    DefaultEventID string
    Logger         *logrus.Logger
    Now            func() time.Time
}

func NewBookingHandler(svc *booking.Service, page *PageHandler, fallback []config.FieldCopy, defaultEventID string, logger *logrus.Logger) *BookingHandler {
    return &BookingHandler{Service: svc, Page: page, Fallback: fallback, DefaultEventID: defaultEventID, Logger: logger, Now: time.Now}
}

// ----- DTOs -----

type ticketTypeView struct {
    booking.TicketType
    DisplayText  string `json:"display_text"`
    Availability string `json:"availability,omitempty"`
    SoldOut      bool   `json:"sold_out"`
}

type bookingReq struct {
    Name           string `json:"name" form:"name"`
    Phone          string `json:"phone" form:"phone"`
    Email          string `json:"email" form:"email"`
    Address        string `json:"address" form:"address"`
    TicketQuantity string `json:"ticketQuantity" form:"ticketQuantity"`
    TicketType     string `json:"ticketType" form:"ticketType"`
    Age            string `json:"age" form:"age"`
    Gender         string `json:"gender" form:"gender"`
    StartDate      string `json:"startDate" form:"startDate"`
    EndDate        string `json:"endDate" form:"endDate"`
    EventID        string `json:"event_id" form:"event_id"`
}

// form converts the request.  Dates accept YYYY-MM-DD or RFC 3339.
func (r bookingReq) form() (booking.Form, error) {
    f := booking.Form{
        Name:           strings.TrimSpace(r.Name),
        Phone:          strings.TrimSpace(r.Phone),
        Email:          strings.TrimSpace(r.Email),
        Address:        strings.TrimSpace(r.Address),
        TicketQuantity: strings.TrimSpace(r.TicketQuantity),
        TicketType:     r.TicketType,
        Age:            strings.TrimSpace(r.Age),
        Gender:         r.Gender,
    }
    var err error
    if f.StartDate, err = optionalDate("startDate", r.StartDate); err != nil {
        return f, err
    }
    f.EndDate, err = optionalDate("endDate", r.EndDate)
    return f, err
}

func optionalDate(field, s string) (*time.Time, error) {
    if strings.TrimSpace(s) == "" {
        return nil, nil
    }
    d, ok := eventapi.ParseDate(strings.TrimSpace(s))
    if !ok {
        return nil, errors.New(field + ": invalid date")
    }
    return &d, nil
}

// ----- handlers -----

// TicketTypes handles GET /v1/booking/ticket-types.  When the event API has
// nothing the fallback labels are returned so the select is never empty.
func (h *BookingHandler) TicketTypes(c echo.Context) error {
    sid := middleware.SessionID(c)
    ids := pageIDs(c, h.DefaultEventID)
    types := h.Service.TicketTypes(c.Request().Context(), sid, ids.EventID)

    items := make([]ticketTypeView, 0, len(types))
    for _, t := range types {
        items = append(items, ticketTypeView{TicketType: t, DisplayText: t.DisplayText(), Availability: t.Availability(), SoldOut: t.SoldOut()})
    }
    resp := echo.Map{"items": items, "loaded": h.Service.Loaded(sid)}
    if len(items) == 0 {
        labels := make([]string, 0, len(h.Fallback))
        for _, fc := range h.Fallback {
            labels = append(labels, fc.Label)
        }
        resp["fallback"] = labels
    }
    return c.JSON(http.StatusOK, resp)
}

// Calendar handles GET /v1/booking/calendar.  Every day outside the ticket's
// validity window, or every day at all for an unknown ticket, is disabled.
func (h *BookingHandler) Calendar(c echo.Context) error {
    ctx := c.Request().Context()
    ids := pageIDs(c, h.DefaultEventID)
    ticketID := strings.TrimSpace(c.QueryParam("ticket_id"))
    if ticketID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_id is required"})
    }

    var ticket *booking.TicketType
    types := h.Service.TicketTypes(ctx, middleware.SessionID(c), ids.EventID)
    for i := range types {
        if types[i].ID == ticketID {
            ticket = &types[i]
            break
        }
    }

    month := h.Now().UTC()
    if m := c.QueryParam("month"); m != "" {
        t, err := time.Parse("2006-01", m)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM"})
        }
        month = t
    } else if ticket != nil {
        if from, _, ok := ticket.Window(); ok {
            month = from
        }
    }

    return c.JSON(http.StatusOK, echo.Map{
        "ticket_id": ticketID,
        "month":     month.Format("2006-01"),
        "known":     ticket != nil,
        "days":      booking.Calendar(ticket, month),
    })
}

// Submit handles POST /v1/booking.  Browser posts are answered with a 303 to
// the payment review page; JSON clients get {"redirect": url}.  A failed
// browser post gets the page back with the form still filled in and the
// error above it.
func (h *BookingHandler) Submit(c echo.Context) error {
    ctx := c.Request().Context()
    sid := middleware.SessionID(c)

    var req bookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    eventID := strings.TrimSpace(req.EventID)
    if eventID == "" {
        eventID = pageIDs(c, h.DefaultEventID).EventID
    }
    f, err := req.form()
    if err != nil {
        return h.fail(c, eventID, f, &booking.ValidationError{Problems: []string{err.Error()}})
    }

    types := h.Service.TicketTypes(ctx, sid, eventID)
    res, err := h.Service.Submit(ctx, sid, eventID, f, types)
    if err != nil {
        return h.fail(c, eventID, f, err)
    }

    target := res.RedirectURL
    if target == "" {
        target = "/"
    }
    if wantsJSON(c) {
        return c.JSON(http.StatusOK, echo.Map{"redirect": target, "booking": res.Form})
    }
    return c.Redirect(http.StatusSeeOther, target)
}

// fail answers a submission that did not book.  JSON clients get the error
// body; a browser already holding a confirmation is sent back to it; any
// other browser post gets the filled form again.
func (h *BookingHandler) fail(c echo.Context, eventID string, f booking.Form, err error) error {
    status, body := bookingError(err)
    if wantsJSON(c) || h.Page == nil {
        return c.JSON(status, body)
    }
    if errors.Is(err, booking.ErrSubmitted) {
        return c.Redirect(http.StatusSeeOther, "/#booking-form")
    }
    st := formState{values: f}
    st.err, _ = body["error"].(string)
    st.problems, _ = body["problems"].([]string)
    return h.Page.renderForm(c, status, eventID, st)
}

func bookingError(err error) (int, echo.Map) {
    var (
        verr *booking.ValidationError
        serr *booking.StepError
    )
    switch {
    case errors.As(err, &verr):
        return http.StatusBadRequest, echo.Map{"error": "invalid booking form", "problems": verr.Problems}
    case errors.Is(err, booking.ErrBusy), errors.Is(err, booking.ErrSubmitted):
        return http.StatusConflict, echo.Map{"error": err.Error()}
    case errors.As(err, &serr):
        return http.StatusBadGateway, echo.Map{"error": "Booking failed: " + serr.Err.Error(), "step": string(serr.Step)}
    }
    return http.StatusInternalServerError, echo.Map{"error": "booking failed"}
}

// GetConfirmation handles GET /v1/booking/confirmation.
func (h *BookingHandler) GetConfirmation(c echo.Context) error {
    ctx := c.Request().Context()
    sid := middleware.SessionID(c)
    f, err := h.Service.Confirmation(ctx, sid)
    if err != nil {
        h.Logger.WithContext(ctx).WithError(err).WithField("sid", sid).Error("confirmation read failed")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirmation unavailable"})
    }
    if f == nil {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking yet"})
    }
    payload := booking.QRPayload(*f, pageIDs(c, h.DefaultEventID).EventID, h.Now())
    return c.JSON(http.StatusOK, echo.Map{
        "booking":      f,
        "phase":        h.Service.Phase(sid).String(),
        "qr_payload":   payload,
        "qr_image_url": booking.QRImageURL(payload),
    })
}

// ClearConfirmation handles DELETE /v1/booking/confirmation ("Pesan Tiket
// Lagi").  The page form reaches it through the _method override.
func (h *BookingHandler) ClearConfirmation(c echo.Context) error {
    ctx := c.Request().Context()
    if err := h.Service.Reset(ctx, middleware.SessionID(c)); err != nil {
        h.Logger.WithContext(ctx).WithError(err).Error("confirmation not cleared")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not clear booking"})
    }
    if wantsJSON(c) {
        return c.NoContent(http.StatusNoContent)
    }
    return c.Redirect(http.StatusSeeOther, "/#booking-form")
}
