package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"loyalty-exchange/internal/config"
	"loyalty-exchange/internal/db"
	"loyalty-exchange/internal/httpserver"
	redemptionrepo "loyalty-exchange/internal/repository/redemption"
	exchangesvc "loyalty-exchange/internal/service/exchange"
	"loyalty-exchange/internal/vtex"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	storeClient := vtex.NewClient(vtex.Config{
		Account:     cfg.VTEXAccount,
		AppKey:      cfg.VTEXAppKey,
		AppToken:    cfg.VTEXAppToken,
		Environment: cfg.VTEXEnvironment,
	}, logger)

	redemptionRepo := redemptionrepo.NewPostgres(dbpool, logger)
	exchangeService := exchangesvc.New(storeClient, redemptionRepo, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ExchangeSvc:    exchangeService,
		RedemptionRepo: redemptionRepo,
	})

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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
