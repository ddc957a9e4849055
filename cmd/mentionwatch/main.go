package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harborne/mentionwatch/internal/app"
	"github.com/harborne/mentionwatch/internal/config"
	"github.com/harborne/mentionwatch/internal/dashboard"
	"github.com/harborne/mentionwatch/internal/logger"
	"github.com/harborne/mentionwatch/internal/metrics"
)

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "mentionwatch",
		Short:         "Daily keyword-filtered news digests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newDashboardCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		strategy string
		date     string
		feeds    string
		watch    string
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch feeds, match, dedupe and write the daily PDF digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(strategy, date, feeds, watch, outDir)
			if err != nil {
				return err
			}
			logger.Init(cfg.Debug)

			if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
				go startMonitoringServer()
			}
			return app.Run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "matching strategy: multi-entity or first-match")
	cmd.Flags().StringVar(&date, "date", "", "target date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&feeds, "feeds", "", "feeds YAML path")
	cmd.Flags().StringVar(&watch, "watchlist", "", "watchlist YAML path")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory")
	return cmd
}

// loadConfig layers CLI flags over environment configuration. Flags may fix
// what the environment got wrong, so validation runs after both.
func loadConfig(strategy, date, feeds, watch, outDir string) (*config.Config, error) {
	cfg, _ := config.Load()
	if strategy != "" {
		cfg.Strategy = strategy
	}
	if date != "" {
		cfg.TargetDate = date
	}
	if feeds != "" {
		cfg.FeedsPath = feeds
	}
	if watch != "" {
		cfg.WatchlistPath = watch
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	return cfg, cfg.Validate()
}

func newDashboardCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Generate a static index.html over previously rendered PDFs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(os.Getenv("DEBUG") == "true")
			return dashboard.Build(rootDir)
		},
	}
	cmd.Flags().StringVar(&rootDir, "root", ".", "directory containing digest PDFs")
	return cmd
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("monitoring server starting", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server stopped", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if healthy, _ := stats["is_healthy"].(bool); !healthy {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
