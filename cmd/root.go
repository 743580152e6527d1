package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shenikar/rescue_dashboard/internal/config"
	"github.com/shenikar/rescue_dashboard/internal/gateway"
	"github.com/shenikar/rescue_dashboard/internal/metrics"
	"github.com/shenikar/rescue_dashboard/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app - общее состояние команд, заполняется перед запуском подкоманды
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	metrics *metrics.Metrics

	apiURL    string
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "rescue-dashboard",
		Short:        "Disaster dashboard client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend base URL (overrides API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json or text (overrides LOG_FORMAT)")

	rootCmd.AddCommand(
		serveCommand(a),
		watchCommand(a),
		healthCommand(a),
		chatCommand(a),
		queryCommand(a),
		socialCommand(a),
		satelliteCommand(a),
		uploadCommand(a),
		resolveCommand(a),
	)
	return rootCmd
}

// initialize загружает конфигурацию и создает логгер и метрики
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIURL = strings.TrimRight(a.apiURL, "/")
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}

	a.cfg = cfg
	// Логи идут в stderr, stdout остается для результатов команд
	a.log = logger.NewWithOutput(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	a.metrics = metrics.New()
	return nil
}

func (a *app) newGateway() *gateway.Client {
	return gateway.NewClient(a.cfg, a.log, a.metrics)
}

// printJSON печатает результат команды
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
