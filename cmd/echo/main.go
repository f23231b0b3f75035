// Package main contains the entrypoint for the ECHO assistant.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"echo/internal/ai"
	"echo/internal/config"
	"echo/internal/dictionary"
	"echo/internal/engine"
	"echo/internal/imagegen"
	"echo/internal/logger"
	"echo/internal/rates"
	"echo/internal/scheduler"
	"echo/internal/server"
	"echo/internal/speech"
	"echo/internal/store"
	"echo/internal/sysops"
	"echo/internal/weather"
)

const dictionaryTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components (config, logger, store, collaborators,
// engine, HTTP server), handles graceful shutdown, and returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	ask := flag.String("ask", "", "Run a single command and exit")
	flag.Parse()

	// .env is optional; real environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	st, err := store.NewStore(cfg.Store.Dir, log)
	if err != nil {
		log.Error("Failed to initialize store", "dir", cfg.Store.Dir, "error", err)
		return 1
	}

	aiClient, err := ai.NewClient(ctx, cfg.AI, log)
	if err != nil {
		if !errors.Is(err, ai.ErrNoAPIKey) {
			log.Error("Failed to initialize AI client", "error", err)
			return 1
		}
		log.Warn("No AI API key configured, conversational fallback disabled")
		aiClient = nil
	}

	weatherClient, err := weather.NewClient(cfg.Weather, log)
	if err != nil {
		if !errors.Is(err, weather.ErrNoAPIKey) {
			log.Error("Failed to initialize weather client", "error", err)
			return 1
		}
		log.Warn("No weather API key configured, weather lookups disabled")
		weatherClient = nil
	}

	host := sysops.New(cfg.Assistant.CapturesDir, log)
	synth := speech.NewSynthesizer(log)
	recognizer := speech.NewRecognizer(log)

	sched, err := scheduler.New(log)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	caps := engine.Capabilities{
		TTS:               synth.Available(),
		SpeechRecognition: recognizer.Available(),
		Screenshot:        host.CanScreenshot(),
		Camera:            host.CanTakePicture(),
	}
	log.Info("Capabilities detected",
		"tts", caps.TTS, "speech_recognition", caps.SpeechRecognition,
		"screenshot", caps.Screenshot, "camera", caps.Camera)

	deps := engine.Deps{
		Store:      st,
		Weather:    nilIfAbsent(weatherClient),
		Dictionary: dictionary.NewClient(dictionaryTimeout, log),
		Rates:      rates.NewClient(cfg.Rates, log),
		Images:     imagegen.NewClient(cfg.ImageGen, cfg.Assistant.CapturesDir, log),
		Host:       host,
		Speaker:    synth,
		Listener:   recognizer,
		Scheduler:  sched,
	}
	if aiClient != nil {
		deps.AI = aiClient
	}
	eng := engine.New(deps, caps, cfg, log)

	if *ask != "" {
		resp := eng.Execute(ctx, *ask)
		fmt.Println(resp.Text)
		return 0
	}

	if err := sched.Start(); err != nil {
		log.Error("Failed to start scheduler", "error", err)
		return 1
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Error("Scheduler shutdown failed", "error", err)
		}
	}()

	if err := eng.RestorePendingReminders(ctx); err != nil {
		log.Warn("Failed to restore pending reminders", "error", err)
	}

	srv := server.New(cfg.Server, eng, cfg.Assistant.CapturesDir, log)

	log.Info("Starting ECHO assistant...")
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gCtx) })

	runErr := g.Wait()
	log.Info("Run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Assistant stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Assistant stopped gracefully.")
	return 0
}

// nilIfAbsent keeps a nil *weather.Client from becoming a non-nil interface.
func nilIfAbsent(c *weather.Client) engine.WeatherService {
	if c == nil {
		return nil
	}
	return c
}
