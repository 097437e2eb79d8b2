package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request: method, path, status, latency
// and the session id.  5xx responses are logged at error level, 4xx at
// warn, everything else at info.
func RequestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                // let Echo's error handler pick the status before we read it
                c.Error(err)
            }
            status := c.Response().Status
            entry := logger.WithContext(c.Request().Context()).WithFields(logrus.Fields{
                "method":     c.Request().Method,
                "path":       c.Request().URL.Path,
                "route":      c.Path(),
                "status":     status,
                "latency_ms": time.Since(start).Milliseconds(),
                "sid":        SessionID(c),
                "ip":         c.RealIP(),
            })
            switch {
            case status >= 500:
                entry.WithError(err).Error("request")
            case status >= 400:
                entry.Warn("request")
            default:
                entry.Info("request")
            }
            return nil
        }
    }
}
