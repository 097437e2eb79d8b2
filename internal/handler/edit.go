package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/fest-booking/internal/booking"
    "github.com/iliyamo/fest-booking/internal/editable"
    "github.com/iliyamo/fest-booking/internal/editing"
    "github.com/iliyamo/fest-booking/internal/section"
    "github.com/iliyamo/fest-booking/internal/utils"
)

// AttemptLister reads journaled submissions that stopped part way.
type AttemptLister interface {
    ListIncomplete(ctx context.Context, limit int) ([]booking.Attempt, error)
}

// EditHandler bundles the edit-mode endpoints.  Every route except Mode
// runs behind RequireEditMode.
type EditHandler struct {
    PasscodeHash string
    Attempts     AttemptLister // nil when no journal database is configured
    Logger       *logrus.Logger
}

func NewEditHandler(passcodeHash string, attempts AttemptLister, logger *logrus.Logger) *EditHandler {
    return &EditHandler{PasscodeHash: passcodeHash, Attempts: attempts, Logger: logger}
}

// ----- DTOs -----

type editModeReq struct {
    Enabled  bool   `json:"enabled" form:"enabled"`
    Passcode string `json:"passcode" form:"passcode"`
}

type saveElementReq struct {
    Type         string                   `json:"type"`
    Default      string                   `json:"default"`
    Value        string                   `json:"value"`
    Styles       *editing.TypographyStyle `json:"styles,omitempty"`
    ButtonStyles *editing.ButtonStyle     `json:"button_styles,omitempty"`
}

type attemptView struct {
    SessionID      string    `json:"session_id"`
    EventID        string    `json:"event_id"`
    LastStep       string    `json:"last_step"`
    UserID         string    `json:"user_id,omitempty"`
    OrderID        string    `json:"order_id,omitempty"`
    TicketDetailID string    `json:"ticket_detail_id,omitempty"`
    Quantity       int       `json:"quantity"`
    TotalPrice     float64   `json:"total_price"`
    Error          string    `json:"error,omitempty"`
    CreatedAt      time.Time `json:"created_at"`
}

// ----- handlers -----

// Mode handles POST /v1/edit/mode.  Turning editing on requires the
// passcode when one is configured; turning it off never does.
func (h *EditHandler) Mode(c echo.Context) error {
    var req editModeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Enabled && !utils.VerifyPasscode(h.PasscodeHash, req.Passcode) {
        h.Logger.WithContext(c.Request().Context()).WithField("ip", c.RealIP()).Warn("edit mode passcode rejected")
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid passcode"})
    }
    s := sessionStore(c)
    s.SetEditMode(req.Enabled)
    return c.JSON(http.StatusOK, echo.Map{"edit_mode": s.EditMode()})
}

func elementFrom(c echo.Context, kind, def string) (editable.Element, error) {
    k, err := editable.ParseKind(kind)
    if err != nil {
        return editable.Element{}, err
    }
    return editable.New(k, c.Param("id"), def), nil
}

// OpenElement handles GET /v1/edit/elements/:id?type=&default=.  It returns
// the draft seeded from the store and the modal description.
func (h *EditHandler) OpenElement(c echo.Context) error {
    el, err := elementFrom(c, c.QueryParam("type"), c.QueryParam("default"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    d, err := editable.Open(sessionStore(c), el)
    if errors.Is(err, editable.ErrEditModeOff) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "edit mode is off"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not open element"})
    }
    return c.JSON(http.StatusOK, editable.ModalFor(d))
}

// SaveElement handles POST /v1/edit/elements/:id.  The body is the draft as
// the modal left it.
func (h *EditHandler) SaveElement(c echo.Context) error {
    var req saveElementReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    el, err := elementFrom(c, req.Type, req.Default)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    s := sessionStore(c)
    d, err := editable.Open(s, el)
    if errors.Is(err, editable.ErrEditModeOff) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "edit mode is off"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not open element"})
    }

    if el.Kind == editable.Image {
        d.SelectImage(req.Value)
    } else {
        d.Value = req.Value
    }
    if req.Styles != nil && d.Styles != nil {
        d.Styles = req.Styles
    }
    if req.ButtonStyles != nil && d.ButtonStyles != nil {
        d.ButtonStyles = req.ButtonStyles
    }

    var perr *editable.PaletteError
    switch err := d.Save(s); {
    case errors.As(err, &perr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "value not in palette", "fields": perr.Fields})
    case errors.Is(err, editable.ErrEditModeOff):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "edit mode is off"})
    case err != nil:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save element"})
    }
    return c.JSON(http.StatusOK, echo.Map{"element_id": el.ID, "value": el.Resolve(s)})
}

// SaveHero handles POST /v1/edit/sections/hero, the bulk hero editor.  Only
// the hero text and background ids are accepted and all of them are written
// together.
func (h *EditHandler) SaveHero(c echo.Context) error {
    var req map[string]string
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    allowed := make(map[string]bool, len(section.HeroFields))
    for _, id := range section.HeroFields {
        allowed[id] = true
    }
    values := make(map[string]editing.Value, len(req))
    for id, v := range req {
        if !allowed[id] {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown hero field: " + id})
        }
        values[id] = editing.TextValue(v)
    }
    sessionStore(c).SetMany(values)
    return c.JSON(http.StatusOK, echo.Map{"saved": len(values)})
}

// BookingAttempts handles GET /v1/edit/booking-attempts: submissions that
// created a user or an order remotely but never reached the ticket detail.
func (h *EditHandler) BookingAttempts(c echo.Context) error {
    if h.Attempts == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking journal disabled"})
    }
    limit := 50
    if v := c.QueryParam("limit"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil || n < 1 || n > 500 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be 1..500"})
        }
        limit = n
    }
    ctx := c.Request().Context()
    rows, err := h.Attempts.ListIncomplete(ctx, limit)
    if err != nil {
        h.Logger.WithContext(ctx).WithError(err).Error("list booking attempts")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]attemptView, 0, len(rows))
    for _, a := range rows {
        out = append(out, attemptView{
            SessionID: a.SessionID, EventID: a.EventID, LastStep: string(a.LastStep),
            UserID: a.UserID, OrderID: a.OrderID, TicketDetailID: a.TicketDetailID,
            Quantity: a.Quantity, TotalPrice: a.TotalPrice, Error: a.Err, CreatedAt: a.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}
