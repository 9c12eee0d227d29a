package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/config"
	"github.com/carlosfiori/conversor-clima/internal/logger"
	"github.com/carlosfiori/conversor-clima/internal/telemetry"
)

var envFile string

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "server",
		Short:        "Currency converter and weather widgets",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(currencyCmd(), weatherCmd(), convertCmd(), lookupCmd())
	return root
}

// deps is what every command needs before doing its own work.
type deps struct {
	cfg        *config.Config
	logger     *zap.Logger
	httpClient *http.Client
	shutdown   telemetry.ShutdownFunc
}

func bootstrap(ctx context.Context, defaultPort string) (*deps, error) {
	cfg, err := config.Load(envFile, defaultPort)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.ServiceName, cfg.Stage, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	shutdown, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Error("Failed to initialize tracer", zap.Error(err))
		return nil, err
	}

	return &deps{
		cfg:        cfg,
		logger:     log,
		httpClient: telemetry.NewHTTPClient(cfg.ClientTimeout),
		shutdown:   shutdown,
	}, nil
}

func (d *deps) close(ctx context.Context) {
	if err := d.shutdown(ctx); err != nil {
		d.logger.Error("Error shutting down tracer provider", zap.Error(err))
	}
	_ = d.logger.Sync()
}
