package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/fuel-calculator/internal/application"
	"github.com/eugenenazirov/fuel-calculator/internal/config"
	"github.com/eugenenazirov/fuel-calculator/internal/fuel"
	"github.com/eugenenazirov/fuel-calculator/internal/logging"
	"github.com/eugenenazirov/fuel-calculator/internal/runner"
)

var signalNotify = signal.Notify

type cli struct {
	app        *kingpin.Application
	configFile *string
	logLevel   *string

	run *kingpin.CmdClause

	serve          *kingpin.CmdClause
	port           *string
	modules        *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCLI() *cli {
	c := &cli{}
	c.app = kingpin.New("fuel", "Fuel Calculator - computes launch fuel for module masses")
	c.configFile = c.app.Flag("config", "Path to YAML configuration file (serve only)").String()
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error)").String()

	c.run = c.app.Command("run", "Print reference figures and the fuel total for modules.txt").Default()
	// Positional arguments are accepted and ignored so `fuel anything` still runs the batch.
	c.run.Arg("ignored", "Ignored").Strings()

	c.serve = c.app.Command("serve", "Serve the fuel calculator over HTTP")
	c.port = c.serve.Flag("port", "HTTP port exposed by the service").String()
	c.modules = c.serve.Flag("modules", "Comma-separated initial module masses").String()
	c.rateLimitRPS = c.serve.Flag("rate-limit-rps", "Fuel calculations per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurst = c.serve.Flag("rate-limit-burst", "Burst capacity for fuel calculations (set 0 to disable)").Default("-1").Int()
	return c
}

func (c *cli) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{ConfigFile: *c.configFile}
	if *c.logLevel != "" {
		overrides.LogLevel = c.logLevel
	}
	if *c.port != "" {
		overrides.Port = c.port
	}
	if *c.modules != "" {
		overrides.ModulesStr = c.modules
	}
	if *c.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = c.rateLimitRPS
	}
	if *c.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = c.rateLimitBurst
	}
	return overrides
}

func main() {
	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	switch command {
	case c.run.FullCommand():
		logger := batchLogger(*c.logLevel)
		defer func() {
			_ = logger.Sync()
		}()
		if err := runBatch(os.Stdout, runner.DefaultInputPath, logger); err != nil {
			logger.Fatal("fuel run failed", zap.Error(err))
		}

	case c.serve.FullCommand():
		cfg, err := config.Load(c.overrides())
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}

		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			panic(fmt.Sprintf("failed to initialize logger: %v", err))
		}
		defer func() {
			_ = logger.Sync()
		}()

		if err := serve(cfg, logger); err != nil {
			logger.Fatal("fuel service failed", zap.Error(err))
		}
	}
}

// batchLogger never fails: the batch report must not depend on logging setup.
// The environment is not consulted.
func batchLogger(level string) *zap.Logger {
	logger, err := logging.New(level)
	if err == nil {
		return logger
	}
	if logger, err = logging.New(""); err == nil {
		logger.Warn("ignoring invalid log level", zap.String("level", level))
		return logger
	}
	return zap.NewNop()
}

func runBatch(w io.Writer, path string, logger *zap.Logger) error {
	return runner.New(fuel.New(), logger).Run(w, path)
}

func serve(cfg config.Config, logger *zap.Logger) error {
	app, err := application.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	if err := app.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("shutting down fuel service", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
