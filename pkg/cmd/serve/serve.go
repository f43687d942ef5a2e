package serve

import (
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/aprs3/f1dashboard-go/log"
	"github.com/aprs3/f1dashboard-go/pkg/api"
	"github.com/aprs3/f1dashboard-go/pkg/config"
	"github.com/aprs3/f1dashboard-go/pkg/processing/history"
	"github.com/aprs3/f1dashboard-go/pkg/provider"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "starts the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer()
		},
	}
	cmd.Flags().StringVarP(&config.ServerAddr,
		"addr",
		"a",
		"localhost:8090",
		"HTTP server listen address")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() *log.Logger {
	if config.LogConfig != "" {
		cfg, err := log.LoadConfig(config.LogConfig)
		if err == nil {
			var logger *log.Logger
			if logger, err = log.NewWithConfig(cfg, os.Stderr, config.LogFormat,
				log.WithCaller(true), log.AddCallerSkip(1)); err == nil {
				return logger
			}
		}
		log.Warn("could not use log config, falling back to flags",
			log.String("file", config.LogConfig), log.ErrorField(err))
	}
	switch config.LogFormat {
	case "json":
		return log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		return log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
}

func startServer() error {
	logger := setupLogger()
	log.ResetDefault(logger)

	log.Debug("Config:",
		log.String("snapshotDir", config.SnapshotDir),
		log.String("scheduleFile", config.ScheduleFile),
		log.String("winnersFile", config.WinnersFile),
		log.String("cacheTTL", config.CacheTTL),
	)

	cacheTTL, err := time.ParseDuration(config.CacheTTL)
	if err != nil {
		cacheTTL = time.Hour
	}
	source := provider.NewCachedSource(
		provider.NewSnapshotSource(config.SnapshotDir),
		provider.WithExpiration(cacheTTL))

	histOpts := []history.Option{}
	if config.TeamColorsFile != "" {
		palette, paletteErr := history.LoadPalette(config.TeamColorsFile)
		if paletteErr != nil {
			log.Warn("could not load team color palette",
				log.String("file", config.TeamColorsFile),
				log.ErrorField(paletteErr))
		} else {
			histOpts = append(histOpts, history.WithPalette(palette))
		}
	}
	histEngine := history.New(config.ScheduleFile, config.WinnersFile, histOpts...)

	mux := http.NewServeMux()
	handlers := api.NewHandlers(source, api.WithHistoryEngine(histEngine))
	handlers.Register(mux)

	server := &http.Server{
		Addr:              config.ServerAddr,
		Handler:           newCORS().Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting API server", log.String("addr", config.ServerAddr))
		errChan <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case err := <-errChan:
		log.Error("server could not be started", log.ErrorField(err))
		return err
	case v := <-sigChan:
		log.Debug("Got signal ", log.Any("signal", v))
	}
	log.Info("Server terminated")
	return nil
}

func newCORS() *cors.Cors {
	// The dashboard frontend is served from a different origin, so we
	// need a very permissive CORS setup.
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowOriginFunc: func(origin string) bool {
			// Allow all origins, which effectively disables CORS.
			return true
		},
		AllowedHeaders: []string{"*"},
		MaxAge:         int(2 * time.Hour / time.Second),
	})
}
