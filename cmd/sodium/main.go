package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thebyteslayer/sodium/pkg/cache"
	"github.com/thebyteslayer/sodium/pkg/cluster"
	"github.com/thebyteslayer/sodium/pkg/config"
	"github.com/thebyteslayer/sodium/pkg/log"
	"github.com/thebyteslayer/sodium/pkg/metrics"
	"github.com/thebyteslayer/sodium/pkg/pool"
	"github.com/thebyteslayer/sodium/pkg/search"
	"github.com/thebyteslayer/sodium/pkg/server"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sodium",
	Short: "Sodium - In-memory key/value cache over TCP",
	Long: `Sodium is an in-memory key/value caching system reached over TCP
with a small line-oriented command language. Requests fan out onto a
work-stealing worker pool over a sharded concurrent store.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Sodium server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Sodium version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the sodium.toml configuration file")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Expose Prometheus metrics on this address (disabled when empty)")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(serverCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

func runServer() error {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	metricsAddr, _ := rootCmd.PersistentFlags().GetString("metrics-addr")

	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.ClusterEnabled {
		if err := cluster.WriteManifest(cluster.ManifestPath, cfg.BindAddress()); err != nil {
			return err
		}
	}

	if metricsAddr != "" {
		go func() {
			if err := metrics.Serve(metricsAddr); err != nil {
				log.WithComponent("metrics").Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	store := cache.New()
	engine := search.NewEngine(store)

	workers := pool.New(runtime.NumCPU(), server.NewExecutor(store, engine))
	defer workers.Shutdown()

	srv, err := server.New(cfg.BindAddress(), workers)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", cfg.BindAddress(), err)
	}

	log.WithComponent("server").Info().
		Str("address", srv.Addr().String()).
		Msg("Sodium running")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
