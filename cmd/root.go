// Package cmd implements the gridmodel command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gridmodel/config"
	"github.com/kilianp07/gridmodel/infra/logger"
)

type rootOptions struct {
	cfgPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gridmodel",
		Short:         "Power grid network data model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file")
	root.AddCommand(newSummaryCmd(opts), newExportCmd(opts), newServeCmd(opts))
	return root
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// load reads the configuration file when one is given and lets a positional
// case argument override network.case.
func (o *rootOptions) load(args []string) (*config.Config, error) {
	cfg := config.Default()
	if o.cfgPath != "" {
		var err error
		if cfg, err = config.Load(o.cfgPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if len(args) > 0 {
		cfg.Network.Case = args[0]
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, component string) (logger.Logger, error) {
	l, err := logger.NewWithOptions(component, cfg.Logging.Options())
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}
