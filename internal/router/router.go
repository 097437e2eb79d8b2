package router // package router defines how HTTP routes are registered

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fest-booking/internal/config"
	"github.com/iliyamo/fest-booking/internal/editing"
	"github.com/iliyamo/fest-booking/internal/handler"
	"github.com/iliyamo/fest-booking/internal/middleware"
)

// Deps is what the routes need from main.
type Deps struct {
	Logger    *logrus.Logger
	Redis     *redis.Client // nil disables the response cache and rate limit
	Registry  editing.Registry
	Session   middleware.SessionConfig
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	CORS      []string
	PublicDir string

	Page     *handler.PageHandler
	Sections *handler.SectionHandler
	Booking  *handler.BookingHandler
	Edit     *handler.EditHandler
	Upload   *handler.UploadHandler
}

// New builds the Echo instance with the global middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTML forms cannot send DELETE; the confirmation form posts _method.
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomw.Recover())
	e.Use(echo.WrapMiddleware(corsHandler(d.CORS)))
	e.Use(middleware.Session(d.Session, d.Registry, d.Logger))

	RegisterRoutes(e)
	RegisterPage(e, d.Page, d.PublicDir)
	RegisterSections(e, d.Sections, middleware.SectionCache(d.Cache, d.Redis, d.Logger))
	RegisterBooking(e, d.Booking, middleware.BookingRateLimit(d.RateLimit, d.Redis, d.Logger))
	RegisterEdit(e, d.Edit)
	RegisterStorage(e, d.Upload)
	return e
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: true,
	}).Handler
}

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPage registers the rendered landing page and the static assets
// under the public directory (placeholder image, scripts, uploads).
func RegisterPage(e *echo.Echo, h *handler.PageHandler, publicDir string) {
	e.GET("/", h.Index)
	e.Static("/static", publicDir+"/static")
	e.Static("/uploads", publicDir+"/uploads")
	e.File("/placeholder.svg", publicDir+"/placeholder.svg")
}

// RegisterSections registers the section views.  They read the event API on
// every call, so the response cache sits in front of them.
func RegisterSections(e *echo.Echo, h *handler.SectionHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/sections", cache)
	g.GET("/hero", h.Hero)
	g.GET("/guest-stars", h.GuestStars)
	g.GET("/venue", h.Venue)
}

// RegisterBooking registers the booking form protocol.  Only the submission
// is rate limited.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/booking")
	g.GET("/ticket-types", h.TicketTypes)
	g.GET("/calendar", h.Calendar)
	g.POST("", h.Submit, limit)
	g.GET("/confirmation", h.GetConfirmation)
	g.DELETE("/confirmation", h.ClearConfirmation)
}

// RegisterEdit registers the edit-mode endpoints.  Switching the mode is
// open; everything else requires the mode to be on.
func RegisterEdit(e *echo.Echo, h *handler.EditHandler) {
	e.POST("/v1/edit/mode", h.Mode)

	g := e.Group("/v1/edit", middleware.RequireEditMode())
	g.GET("/elements/:id", h.OpenElement)
	g.POST("/elements/:id", h.SaveElement)
	g.POST("/sections/hero", h.SaveHero)
	g.GET("/booking-attempts", h.BookingAttempts)
}

// RegisterStorage registers the image upload shim.
func RegisterStorage(e *echo.Echo, h *handler.UploadHandler) {
	e.POST("/api/upload", h.Upload)
	e.GET("/api/upload", h.Fetch)
	e.POST("/api/delete-file", h.Delete)
}
