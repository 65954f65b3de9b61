package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/paddock-picks/internal/api"
	"github.com/yourusername/paddock-picks/internal/health"
	"github.com/yourusername/paddock-picks/internal/metrics"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API with health and metrics endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			srvCfg := health.Config{
				ServiceName:     cfg.App.Name,
				Version:         Version,
				Commit:          GitCommit,
				Addr:            cfg.GetServerAddress(),
				ReadTimeout:     time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
				ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
				Routes:          api.NewHandler(newAnalysisService(true), cfg.Server.MaxBodyBytes, log),
				Logger:          log,
			}
			if cfg.Metrics.Enabled {
				metrics.InitRegistry()
				srvCfg.MetricsPath = cfg.Metrics.Path
				srvCfg.Metrics = metrics.Handler()
			}

			server := health.NewServer(srvCfg)
			if err := server.Start(ctx); err != nil {
				return err
			}
			server.SetReady(true)

			<-server.Done()
			log.Info("Server stopped")
			return nil
		},
	}
}
