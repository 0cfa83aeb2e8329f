package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bookingsvc/internal/app/config"
	httpapi "bookingsvc/internal/app/http"
	"bookingsvc/internal/app/http/handler"
	"bookingsvc/internal/domain/booking"
	"bookingsvc/internal/domain/payment"
	"bookingsvc/internal/domain/stats"
	"bookingsvc/internal/domain/user"
	"bookingsvc/internal/eventbus"
	"bookingsvc/internal/infrastructure/async"
	"bookingsvc/internal/infrastructure/db/pg"
	"bookingsvc/internal/infrastructure/logging"
	"bookingsvc/internal/subscribers"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	db, err := pg.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := pg.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Fatal("migration error", zap.Error(err))
	}

	uow := pg.NewTxManager(db)

	bus := eventbus.New(log)
	bus.SetMaxListeners(cfg.EventMaxListeners)

	pool := async.NewWorkerPool(ctx, cfg.NotifyWorkers, cfg.NotifyQueue, cfg.NotifyTimeout, log.Named("notify-pool"))

	userRepo := pg.NewUserRepository(db)
	bookingRepo := pg.NewBookingRepository(db)
	paymentRepo := pg.NewPaymentRepository(db)
	statsRepo := pg.NewStatsRepository(db)

	userSvc := user.NewService(uow, userRepo, bus)
	bookingSvc := booking.NewService(uow, bookingRepo, userRepo, bus)
	paymentSvc := payment.NewService(uow, paymentRepo, bookingRepo, bus)
	statsSvc := stats.NewService(statsRepo)

	subs := subscribers.NewSet(pool, subscribers.LogSender{Log: log.Named("mailer")}, statsSvc, log)
	subs.Register(bus)

	h := handler.New(userSvc, bookingSvc, paymentSvc, statsSvc, bus, subs.Monitor, bus, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.Strings("events", bus.EventNames()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}

	// Detached listeners write through db; they must finish before it closes.
	if err := bus.Drain(shutdownCtx); err != nil {
		log.Warn("event listeners still running at shutdown", zap.Error(err))
	}
	bus.RemoveAllListeners()
	pool.Shutdown(shutdownCtx)
}
