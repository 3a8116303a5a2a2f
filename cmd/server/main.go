package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/csg33k/leave-panel/internal/adapters/hrapi"
	"github.com/csg33k/leave-panel/internal/adapters/leavecsv"
	"github.com/csg33k/leave-panel/internal/adapters/pdf"
	"github.com/csg33k/leave-panel/internal/adapters/qr"
	"github.com/csg33k/leave-panel/internal/adapters/vcard"
	"github.com/csg33k/leave-panel/internal/adapters/xlsx"
	"github.com/csg33k/leave-panel/internal/config"
	"github.com/csg33k/leave-panel/internal/handlers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	client, err := hrapi.New(cfg.HRAPI.BaseURL,
		hrapi.WithTimeout(cfg.HRAPI.Timeout),
		hrapi.WithLeavePath(cfg.HRAPI.LeavePath),
	)
	if err != nil {
		log.Fatalf("failed to configure HR backend client: %v", err)
	}

	cards := vcard.New(cfg.VCardOrg)
	h := handlers.New(client, handlers.Options{
		InitialForm:       cfg.InitialFormState(),
		ExportConcurrency: cfg.ExportConcurrency,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		QRCode:            qr.New(cards),
	}, pdf.New(), xlsx.New(), leavecsv.New(), cards)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("leave panel running", "addr", "http://localhost"+cfg.Addr(), "hr_api", cfg.HRAPI.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
	}
}
