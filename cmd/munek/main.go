package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/munek/internal/app"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := app.LoadConfig()
	if !cfg.IsDev() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create app")
	}

	port := cfg.Port
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		zlog.Warn().Err(err).Str("port", port).Msg("puerto ocupado, probando alternativos")
		for p := 8081; p <= 8090; p++ {
			l2, err2 := net.Listen("tcp", net.JoinHostPort("", fmt.Sprintf("%d", p)))
			if err2 == nil {
				ln = l2
				port = fmt.Sprint(p)
				break
			}
		}
		if ln == nil {
			zlog.Fatal().Err(err).Msg("no hay puerto disponible")
		}
	}

	server := &http.Server{
		Handler:           application.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info().Str("port", port).Str("storage", cfg.StorageDriver).Msg("MUÑEK escuchando")
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("serve")
		}
	}()

	every := cfg.StorefrontTTL / 2
	if every <= 0 {
		every = time.Minute
	}
	sweep := time.NewTicker(every)
	defer sweep.Stop()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

loop:
	for {
		select {
		case <-sweep.C:
			application.Storefronts.Sweep(cfg.StorefrontTTL)
		case <-quit:
			break loop
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown")
	}
	if err := application.Close(); err != nil {
		zlog.Error().Err(err).Msg("close")
	}
}
