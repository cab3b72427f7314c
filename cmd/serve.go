package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gridmodel/app"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var interval time.Duration
	c := &cobra.Command{
		Use:   "serve [case]",
		Short: "Record a case to the configured metrics sinks until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(args)
			if err != nil {
				return err
			}
			svc, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer svc.Close()
			return svc.Run(cmd.Context(), interval)
		},
	}
	c.Flags().DurationVarP(&interval, "interval", "i", time.Minute, "re-record period, 0 records once")
	return c
}
