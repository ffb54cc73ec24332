package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"statusbus/internal/app"
	"statusbus/internal/config"
)

var (
	scenarioFile string
	holdMS       int
	watchPath    string
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the status relay",
	Long: `Run the status relay until interrupted.

The simulated network monitor plays its scenario (the built-in link
flap cycle, or a YAML scenario passed with --scenario) and every step
is relayed to the registered listeners. A non-looping scenario ends
the run when it finishes.

Example:
  statusbus run                           # built-in flap cycle
  statusbus run --scenario outage.yaml    # scripted transitions
  statusbus run --watch /tmp/drop         # also relay file activity`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file for the network monitor")
	runCmd.Flags().IntVar(&holdMS, "hold-ms", 0, "default hold between scenario steps (default: 1000)")
	runCmd.Flags().StringVar(&watchPath, "watch", "", "directory to watch for file activity")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with flags
	if scenarioFile != "" {
		cfg.Monitor.ScenarioFile = scenarioFile
	}
	if holdMS != 0 {
		cfg.Monitor.HoldMS = holdMS
	}
	if watchPath != "" {
		cfg.Watcher.Enabled = true
		cfg.Watcher.Path = watchPath
	}

	// Re-validate after overrides
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logging
	setupLogging(cfg)

	// Operator-facing startup summary
	summary := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	summary.Info("starting statusbus",
		"version", version,
		"scenario", scenarioOrDefault(cfg),
		"watch", cfg.Watcher.Path,
	)

	// Create application
	application, err := app.New(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	// Start the application
	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("application error: %w", err)
	}

	summary.Info("statusbus stopped", "last_status", application.LinkStatus())
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func setupLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set output format
	if cfg.Logging.Format == "console" || verbose {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Add verbose logging if flag is set
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func scenarioOrDefault(cfg *config.Config) string {
	if !cfg.Monitor.Enabled {
		return "disabled"
	}
	if cfg.Monitor.ScenarioFile != "" {
		return cfg.Monitor.ScenarioFile
	}
	return "builtin"
}
