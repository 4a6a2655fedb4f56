package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"dialboard/internal/config"
	"dialboard/internal/dials"
	"dialboard/internal/marketdata"
	"dialboard/internal/snapshot"
	transporthttp "dialboard/internal/transport/http"
)

func main() {
	once := flag.Bool("once", false, "build one snapshot, write it, and exit")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	setupLogger(cfg.LogLevel)

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load tuning")
	}

	var data dials.Provider
	var quotes dials.QuoteProvider
	if cfg.StaticDataPath != "" {
		static, err := marketdata.NewStaticProvider(cfg.StaticDataPath)
		if err != nil {
			log.Fatal().Err(err).Msg("init static provider")
		}
		data, quotes = static, static
		log.Info().Str("path", cfg.StaticDataPath).Msg("using static market data")
	} else {
		if cfg.FREDAPIKey == "" {
			log.Warn().Msg("FRED_API_KEY not set; FRED-backed dials will degrade")
		}
		data = marketdata.NewFREDClient(cfg.FREDAPIKey)
		quotes = marketdata.NewStooqClient()
	}

	previous := snapshot.NewFilePrevious(cfg.OutputPath)

	engine, err := dials.NewEngine(data, quotes, previous, dials.DefaultDialSet(tuning))
	if err != nil {
		log.Fatal().Err(err).Msg("init engine")
	}

	if *once {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RefreshTimeout)*time.Second)
		defer cancel()
		snap := engine.Run(ctx)
		if err := snapshot.Write(cfg.OutputPath, snap); err != nil {
			log.Fatal().Err(err).Msg("write snapshot")
		}
		log.Info().Str("path", cfg.OutputPath).Str("as_of", snap.AsOf).Int("cards", len(snap.Cards)).Msg("snapshot written")
		return
	}

	server := transporthttp.NewServer(engine)

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RefreshTimeout)*time.Second)
		defer cancel()
		snap := server.Refresh(ctx)
		if err := snapshot.Write(cfg.OutputPath, snap); err != nil {
			log.Warn().Err(err).Msg("write snapshot")
		}
	}
	refresh()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshSchedule, refresh); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("parse refresh schedule")
	}
	scheduler.Start()

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      withLogging(withCORS(server.Routes())),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("dial API listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogger(level string) {
	log.DefaultLogger.Level = log.ParseLevel(level)
	if log.IsTerminal(os.Stderr.Fd()) {
		log.DefaultLogger.Writer = &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
		}
	}
}

// Middleware: request logging
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().Str("method", r.Method).Str("path", r.URL.Path).Dur("elapsed", time.Since(start)).Msg("request")
	})
}

// Middleware: allow the dashboard frontend to read responses
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
