package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rodrigues-modas/internal/auth"
	"rodrigues-modas/internal/cart"
	"rodrigues-modas/internal/catalog"
	"rodrigues-modas/internal/checkout"
	"rodrigues-modas/internal/config"
	"rodrigues-modas/internal/db"
	"rodrigues-modas/internal/httpserver"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	catalogRepo := catalog.NewPostgres(dbpool, logger)
	userRepo := auth.NewPostgres(dbpool, logger)
	authService := auth.New(userRepo, cfg.JWTSecret)
	guestSessions := auth.NewGuestSessions()

	localStore := cart.NewLocal(cart.NewFileSlot(cfg.GuestCartDir), logger)
	remoteStore := cart.NewRemote(dbpool, logger)
	engine := cart.NewEngine(localStore, remoteStore, catalogRepo, cart.NopNotifier{}, logger, cfg.MergeTimeout)

	ordersRepo := checkout.NewPostgres(dbpool, logger)
	checkoutService := checkout.New(engine, ordersRepo, cfg.WhatsAppNumber, cfg.StoreBaseURL, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Cart:        engine,
		Auth:        authService,
		Guests:      guestSessions,
		Checkout:    checkoutService,
		Catalog:     catalogRepo,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
