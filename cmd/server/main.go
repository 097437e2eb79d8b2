package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/iliyamo/fest-booking/internal/applog"
	"github.com/iliyamo/fest-booking/internal/booking"
	"github.com/iliyamo/fest-booking/internal/config"
	"github.com/iliyamo/fest-booking/internal/database"
	"github.com/iliyamo/fest-booking/internal/editing"
	"github.com/iliyamo/fest-booking/internal/eventapi"
	"github.com/iliyamo/fest-booking/internal/handler"
	"github.com/iliyamo/fest-booking/internal/middleware"
	"github.com/iliyamo/fest-booking/internal/queue"
	"github.com/iliyamo/fest-booking/internal/repository"
	"github.com/iliyamo/fest-booking/internal/router"
	"github.com/iliyamo/fest-booking/internal/section"
	queue_publisher "github.com/iliyamo/fest-booking/internal/service"
	"github.com/iliyamo/fest-booking/internal/storage"
	"github.com/iliyamo/fest-booking/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile, contentFile string

	flagSet := pflag.NewFlagSet("fest-booking", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	flagSet.StringVar(&contentFile, "content", "", "YAML fallback copy (overrides CONTENT_FILE; default: embedded)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// hash-passcode <passcode> prints a value for EDIT_PASSCODE_HASH
	if args := flagSet.Args(); len(args) > 0 {
		if args[0] != "hash-passcode" || len(args) != 2 {
			return fmt.Errorf("usage: fest-booking [flags] | fest-booking hash-passcode <passcode>")
		}
		hash, err := utils.HashPasscode(args[1], 0)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	}

	cfg := config.Load(envFile) // Load environment config
	logger := applog.Configure(cfg.Env, cfg.LogLevel)
	if contentFile == "" {
		contentFile = cfg.ContentFile
	}
	content, err := config.LoadContent(contentFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis backs sessions, confirmations, the section cache and the rate
	// limit.  Without it everything stays in process memory.
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	var (
		registry editing.Registry
		slot     booking.Slot
	)
	if rdb != nil {
		defer rdb.Close()
		registry = editing.NewRedisRegistry(rdb, "fest:edit", cfg.SessionTTL)
		slot = booking.NewRedisSlot(rdb, 0)
	} else {
		logger.Warn("redis unavailable; sessions and confirmations kept in memory")
		mem := editing.NewMemoryRegistry(cfg.SessionTTL)
		go mem.Run(ctx, time.Minute)
		registry = mem
		slot = booking.NewMemorySlot()
	}

	opts := booking.Options{RedirectURL: cfg.PaymentReviewURL, MachineTTL: cfg.SessionTTL}
	var attempts handler.AttemptLister
	if cfg.JournalEnabled() {
		db, err := database.Open(ctx, database.Settings{User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName})
		if err != nil {
			return fmt.Errorf("journal database: %w", err)
		}
		defer db.Close()
		repo := repository.NewBookingAttemptRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("journal schema: %w", err)
		}
		opts.Journal = repo
		attempts = repo
	}
	if cfg.RabbitEnabled {
		pub := queue_publisher.New(cfg.RabbitURL, logger)
		defer pub.Close()
		opts.Publisher = pub
		consumer := &queue.Consumer{URL: cfg.RabbitURL, LogPath: cfg.BookingLogPath, Logger: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.WithError(err).Error("booking consumer stopped")
			}
		}()
	}

	client := eventapi.New(cfg.EventAPIBaseURL, logger, &http.Client{Timeout: cfg.EventAPITimeout})
	loader := section.NewLoader(client, content, logger)
	svc := booking.NewService(client, slot, logger, opts)
	go svc.Run(ctx, time.Minute)

	page := handler.NewPageHandler(loader, svc, content.Form, cfg.DefaultEventID, logger)
	e := router.New(router.Deps{
		Logger:    logger,
		Redis:     rdb,
		Registry:  registry,
		Session:   middleware.SessionConfig{Secret: cfg.SessionSecret, TTL: cfg.SessionTTL, Secure: cfg.Env == "prod" || cfg.Env == "production"},
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		CORS:      cfg.CORSOrigins,
		PublicDir: cfg.PublicDir,
		Page:      page,
		Sections:  handler.NewSectionHandler(loader, cfg.DefaultEventID),
		Booking:   handler.NewBookingHandler(svc, page, content.Form.FallbackTickets, cfg.DefaultEventID, logger),
		Edit:      handler.NewEditHandler(cfg.EditPasscodeHash, attempts, logger),
		Upload:    handler.NewUploadHandler(storage.New(cfg.PublicDir), logger),
	})

	addr := ":" + cfg.Port // Address string with port
	go func() {
		logger.WithField("addr", addr).WithField("env", cfg.Env).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
