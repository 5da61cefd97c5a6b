package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"diagnosd/internal/config"
	"diagnosd/internal/diagnosis"
	"diagnosd/internal/httpapi"
)

func main() {
	// Optional .env in the working directory; real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	configPath := flag.String("config", os.Getenv("DIAGNOSD_CONFIG"), "Path to a YAML/JSON/TOML config file")
	addr := flag.String("addr", "", "HTTP listen address, e.g. :8000 (overrides -port)")
	port := flag.Int("port", 0, "HTTP port (defaults PORT or 8000)")
	modelPath := flag.String("model", "", "Model artifact path (defaults DIAGNOSD_MODEL or cancermodel.json)")
	logLevel := flag.String("log-level", "", "Log level: debug|info|warn|error")
	logFormat := flag.String("log-format", "", "Log format: json|console")
	logFile := flag.String("log-file", "", "Also write logs to this file (rotated)")
	predictTimeout := flag.Duration("predict-timeout", 0, "Per-request predict timeout (0 disables)")
	corsOrigins := flag.String("cors-origins", "", "Comma separated origins; enables CORS when set")
	flag.Parse()

	cfg, err := resolveConfig(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	// Flags win over env and file.
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *modelPath != "" {
		cfg.ModelPath = *modelPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *predictTimeout > 0 {
		cfg.PredictTimeoutMS = int(predictTimeout.Milliseconds())
	}
	if origins := splitCSV(*corsOrigins); len(origins) > 0 {
		cfg.CORS.Enabled = true
		cfg.CORS.AllowedOrigins = origins
	}
	config.ApplyDefaults(&cfg)

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer closeLog()

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetPredictTimeout(time.Duration(cfg.PredictTimeoutMS) * time.Millisecond)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)
	httpapi.SetSwaggerEnabled(!cfg.DisableSwagger)

	// Never fatal: a missing or broken model leaves the service in the
	// unavailable state and the form keeps working.
	svc := diagnosis.Load(diagnosis.Config{
		ModelPath: cfg.ModelPath,
		Publisher: httpapi.PredictionMetrics{},
		Logger:    &logger,
	})

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Bool("model_ready", svc.Ready()).Msg("diagnosd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}

// resolveConfig layers the optional config file under environment overrides.
func resolveConfig(path string, getenv func(string) string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	if err := config.ApplyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
