package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/service"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "gabinete",
	Short: "Legislative activity API for a deputy's office",
	Long: `gabinete serves a deputy's bills, committees and provisional measures,
aggregated from the Câmara and Senado open data APIs, together with the
office's own technical notes.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// pipelines groups the aggregators both serve and proposals need
type pipelines struct {
	proposals  *service.ProposalAggregator
	measures   *service.MeasureAggregator
	committees *service.CommitteeService
}

func newPipelines(cfg config.Config, notes service.NoteFinder, reg prometheus.Registerer, logger *slog.Logger) *pipelines {
	metrics := service.NewMetrics(reg)

	camara := service.NewCamaraClient(service.NewRemoteClient("camara", cfg.RemoteTimeout, metrics), cfg.CamaraBaseURL)
	senado := service.NewSenadoClient(service.NewRemoteClient("senado", cfg.RemoteTimeout, metrics), cfg.SenadoBaseURL)

	return &pipelines{
		proposals:  service.NewProposalAggregator(cfg, camara, notes, metrics, logger),
		measures:   service.NewMeasureAggregator(cfg, senado, metrics, logger),
		committees: service.NewCommitteeService(cfg, camara),
	}
}
