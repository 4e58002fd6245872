package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/vision3/internal/analysis"
	"github.com/ayusman/vision3/internal/config"
	"github.com/ayusman/vision3/internal/logging"
	"github.com/ayusman/vision3/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	analyzeFile := flag.String("analyze", "", "answer a single JSON message from a file (- for stdin) and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := logging.New(cfg.Server.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	service := analysis.New(analysis.Config{
		Logger:  logger.Named("analysis"),
		Workers: cfg.Analysis.Workers,
	})

	if *analyzeFile != "" {
		if err := analyzeOnce(service, *analyzeFile); err != nil {
			logger.Fatal("analysis failed", zap.Error(err))
		}
		return
	}

	if err := serve(cfg, service, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// loadConfig reads the given file, or config.yaml in the working directory when no
// path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.New()
}

// analyzeOnce answers one message and writes the reply to stdout.
func analyzeOnce(service *analysis.Service, path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}

	reply := service.Handle(context.Background(), data)
	_, err = fmt.Fprintln(os.Stdout, string(reply))
	return err
}

// serve runs the HTTP server until SIGINT or SIGTERM.
func serve(cfg *config.Config, service *analysis.Service, logger *zap.Logger) error {
	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		logger.Info("serving static files", zap.String("dir", staticDir))
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Service:   service,
		Logger:    logger.Named("server"),
		WS: server.WSConfig{
			MaxMessageBytes: cfg.WS.MaxMessageBytes,
			RateLimit:       cfg.WS.RateLimit,
			Burst:           cfg.WS.Burst,
		},
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe(cfg.Server.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// findWebDir searches for the front end bundle in common locations.
// It checks: "web", "../web", "../../web", and ~/.vision3/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".vision3", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
