package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qhttp "lpapredictor/http"
	"lpapredictor/logging"
	"lpapredictor/monitoring"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction form and API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, *configPath)
		},
	}
}

func runServe(ctx context.Context, cmd *cobra.Command, configPath string) error {
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	model, err := loadModel(cmd.ErrOrStderr(), cfg.Model.Path)
	if err != nil {
		logger.Error("model load failed", zap.String("path", cfg.Model.Path), zap.Error(err))
		return err
	}
	logger.Named("ml").Info("model loaded",
		zap.String("path", model.Source),
		zap.Float64("slope", model.Slope),
		zap.Float64("intercept", model.Intercept),
	)

	server, err := qhttp.NewServer(qhttp.ServerConfig{
		Port:         cfg.HTTP.Port,
		Timeout:      cfg.HTTP.Timeout,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		CacheSize:    cfg.Cache.Size,
	}, model, logger.Named("http"), monitoring.NewCollector())
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("exiting")
	return nil
}
