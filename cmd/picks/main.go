package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/paddock-picks/internal/config"
	"github.com/yourusername/paddock-picks/internal/logger"
	"github.com/yourusername/paddock-picks/internal/service"
	"github.com/yourusername/paddock-picks/internal/strategy"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	log        *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newCorrectCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "picks",
	Short: "Find mid-popularity place bets in pasted race cards",
	Long: `Parses entry tables copied from race-card pages, picks one mid-popularity
runner per race by place odds, and ranks the races worth betting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		out := io.Writer(os.Stderr)
		if cmd.Name() == "serve" {
			out = os.Stdout
		}
		log = logger.NewLogger(out, cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "picks %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// newAnalysisService builds the scorer from config. The report cache is only worth
// keeping in the long-running server.
func newAnalysisService(withCache bool) *service.AnalysisService {
	var reportCache *service.ReportCache
	if withCache && cfg.Cache.Enabled {
		reportCache = service.NewReportCache(cfg.GetCacheTTL(), cfg.Cache.MaxEntries)
	}
	evaluator := strategy.NewMidTierStrategy(cfg.Scoring.Thresholds())
	return service.NewAnalysisService(evaluator, reportCache, log)
}
