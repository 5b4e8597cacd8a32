// Package cli wires the pipeline stages into a cobra command tree.
package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/artifact"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/config"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/embedding"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/pipeline"
)

type app struct {
	cfgPath  string
	logLevel string

	cfg      *config.Config
	logger   zerolog.Logger
	pipeline *pipeline.Pipeline
}

// NewRootCmd builds the oar command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "oar",
		Short:         "Supply-chain traceability identity resolution pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "config/config.toml", "path to the TOML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		a.runCmd(),
		a.feedCmd(),
		a.cleanCmd(),
		a.sitesCmd(),
		a.validateCmd(),
		a.detectCmd(),
		a.exportCmd(),
		a.graphCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup() error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.pipeline = pipeline.New(cfg, a.logger)
	return nil
}

// ErrorKind classifies a fatal error so callers can branch on kind rather
// than message text.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, artifact.ErrNotFound):
		return "missing-artifact"
	case errors.Is(err, embedding.ErrProvider):
		return "external-provider-failure"
	case errors.Is(err, config.ErrInvalidConfig):
		return "invalid-configuration"
	default:
		return "internal"
	}
}
