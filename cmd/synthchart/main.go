package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"SynthChart/internal/collector"
	"SynthChart/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "synthchart",
	Short: "Synthesized cross-pair candlestick charts for synths",
	Long: `synthchart derives candlestick charts for any synth pair from the sUSD
price history of each leg, and serves or prints them.`,
	SilenceUsage: true,
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd, pairCmd)
}

// setup loads and validates the config and builds the shared logger and collector.
func setup() (*config.Config, *logrus.Logger, *collector.Collector, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("config validation: %w", err)
	}

	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	fetcher := collector.NewSubgraphFetcher(cfg.DataSource.SubgraphURL, cfg.DataSource.Proxy)
	logger.Infof("data source: %s", fetcher.Name())

	return cfg, logger, collector.NewCollector(fetcher, logger), nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
