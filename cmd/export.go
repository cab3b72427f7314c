package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gridmodel/app"
	"github.com/kilianp07/gridmodel/pkg/export"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var format, out string
	c := &cobra.Command{
		Use:   "export [case]",
		Short: "Write a case as CSV tables or GeoJSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Export.Format = format
			}
			if cmd.Flags().Changed("out") {
				cfg.Export.Dir = out
			}
			f, err := export.ParseFormat(cfg.Export.Format)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, "export")
			if err != nil {
				return err
			}
			grid, err := app.LoadGrid(cfg, log)
			if err != nil {
				return err
			}
			paths, err := export.WriteDir(cfg.Export.Dir, f, grid)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			log.Infof("exported %s as %s to %s", grid.Name(), f, cfg.Export.Dir)
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or geojson")
	c.Flags().StringVarP(&out, "out", "o", "out", "output directory")
	return c
}
