package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP cookie helpers
    "time"     // cookie expiry

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers
    "github.com/sirupsen/logrus"  // structured logging

    "github.com/iliyamo/fest-booking/internal/editing" // per-session editing store
    "github.com/iliyamo/fest-booking/internal/utils"   // session token signing
)

// SessionCookie names the visitor session cookie.
const SessionCookie = "fest_session"

// sessionKey is the Echo context key holding the session id.
const sessionKey = "sid"

// SessionConfig configures the visitor session.
type SessionConfig struct {
    Secret string        // HS256 signing secret
    TTL    time.Duration // session lifetime, refreshed on every request
    Secure bool          // set the Secure cookie flag (production)
}

// Session returns an Echo middleware that gives every visitor a signed
// session cookie and attaches the visitor's editing store to the request
// context.  The store is loaded from the registry before the handler runs
// and written back afterwards, but only if something in it changed.
// A missing, forged or expired cookie starts a new session.
func Session(cfg SessionConfig, reg editing.Registry, logger *logrus.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            sid := ""
            if ck, err := c.Cookie(SessionCookie); err == nil {
                sid, _ = utils.ParseSession(cfg.Secret, ck.Value)
            }
            var (
                tok utils.SessionToken
                err error
            )
            if sid == "" {
                tok, err = utils.NewSessionToken(cfg.Secret, cfg.TTL)
            } else {
                tok, err = utils.SignSession(cfg.Secret, sid, cfg.TTL)
            }
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session unavailable"})
            }
            c.SetCookie(&http.Cookie{
                Name:     SessionCookie,
                Value:    tok.Token,
                Path:     "/",
                Expires:  tok.Exp,
                HttpOnly: true,
                Secure:   cfg.Secure,
                SameSite: http.SameSiteLaxMode,
            })

            ctx := c.Request().Context()
            store, err := reg.Load(ctx, tok.SID)
            if err != nil {
                // a broken registry degrades to an empty, unsaved store
                logger.WithContext(ctx).WithError(err).WithField("sid", tok.SID).Warn("edit store unavailable")
                store = editing.NewStore()
            }
            dirty := false
            cancel := store.Subscribe(func(string) { dirty = true })
            defer cancel()

            c.Set(sessionKey, tok.SID)
            c.SetRequest(c.Request().WithContext(editing.WithStore(ctx, store)))

            herr := next(c)
            if dirty {
                if err := reg.Save(ctx, tok.SID, store); err != nil {
                    logger.WithContext(ctx).WithError(err).WithField("sid", tok.SID).Error("edit store not saved")
                }
            }
            return herr
        }
    }
}

// SessionID returns the visitor session id set by Session, or "anon".
func SessionID(c echo.Context) string {
    if v, ok := c.Get(sessionKey).(string); ok && v != "" {
        return v
    }
    return "anon"
}
