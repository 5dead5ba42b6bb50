package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"workshopBooker/internal/config"
	"workshopBooker/internal/enrollment"
	"workshopBooker/internal/http-server/handlers/workshop/editEnrollment"
	"workshopBooker/internal/http-server/handlers/workshop/enroll"
	"workshopBooker/internal/http-server/handlers/workshop/fresh"
	"workshopBooker/internal/http-server/handlers/workshop/listEnrollments"
	"workshopBooker/internal/http-server/handlers/workshop/listSessions"
	"workshopBooker/internal/http-server/handlers/workshop/seed"
	"workshopBooker/internal/http-server/middleware/mwlogger"
	"workshopBooker/internal/lib/logger/handlers/slogpretty"
	"workshopBooker/internal/lib/logger/sl"
	"workshopBooker/internal/storage"
	"workshopBooker/internal/storage/postgres"
	"workshopBooker/internal/storage/sqlite"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting workshop booker",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("single_enrollment", cfg.Enrollment.SingleEnrollmentPerRegistrant),
	)
	log.Debug("Debug messages are enabled")

	db, err := openStorage(&cfg.Storage)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if err = db.EnsureSchema(context.Background()); err != nil {
		log.Error("failed to create schema", sl.Err(err))
		os.Exit(1)
	}

	guard := enrollment.NewGuard(log, db, enrollment.GuardOptions{
		Isolation: cfg.Storage.Isolation,
		Timeout:   cfg.Storage.TxTimeout,
	})
	service := enrollment.New(log, db, guard, enrollment.Options{
		SingleEnrollmentPerRegistrant: cfg.Enrollment.SingleEnrollmentPerRegistrant,
	})

	violations, err := service.Audit(context.Background())
	if err != nil {
		log.Error("failed to audit storage", sl.Err(err))
	}
	for _, v := range violations {
		log.Warn("storage is inconsistent", slog.String("invariant", v.Invariant), slog.String("detail", v.Detail))
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/seed", seed.New(log, service))
	router.Post("/inscrever", enroll.New(log, service))
	router.Post("/editar-inscricao", editEnrollment.New(log, service))
	router.Get("/inscricoes", listEnrollments.New(log, service))
	router.Get("/oficinas", listSessions.New(log, service))
	router.Post("/fresh", fresh.New(log, service))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.Timeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = db.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed", slog.String("driver", db.Dialect.Name()))
}

func openStorage(cfg *config.Storage) (*storage.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLite.Path)
	case config.DriverPostgres:
		return postgres.InitDB(&cfg.Database)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
