package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gridmodel/app"
	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
	"github.com/kilianp07/gridmodel/core/powergrid"
)

func newSummaryCmd(root *rootOptions) *cobra.Command {
	var position int
	c := &cobra.Command{
		Use:   "summary [case]",
		Short: "Print the size, bound policy and per bus bounds of a case",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if position < 0 {
				return fmt.Errorf("position must not be negative")
			}
			cfg, err := root.load(args)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, "summary")
			if err != nil {
				return err
			}
			grid, err := app.LoadGrid(cfg, log)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), grid, position)
		},
	}
	c.Flags().IntVarP(&position, "position", "p", 0, "timestamp position of the bounds table")
	return c
}

func writeSummary(w io.Writer, grid *powergrid.PowerGrid, position int) error {
	st := grid.Stats()
	fmt.Fprintf(w, "network:     %s (%s)\n", grid.Name(), grid.ID())
	fmt.Fprintf(w, "base MVA:    %g\n", grid.BaseMVA())
	fmt.Fprintf(w, "bound type:  %s (generators %s, loads %s)\n",
		grid.NetworkBoundType(), grid.GeneratorBoundType(), grid.LoadBoundType())
	fmt.Fprintf(w, "buses:       %d\n", st.Vertices)
	fmt.Fprintf(w, "branches:    %d\n", st.Edges)
	fmt.Fprintf(w, "generators:  %d at %d buses\n", st.Generators, st.VerticesWithGenerator)
	fmt.Fprintf(w, "loads:       %d at %d buses\n", st.Loads, st.VerticesWithLoad)
	fmt.Fprintf(w, "timestamps:  %d\n", st.Timestamps)
	fmt.Fprintf(w, "islands:     %d\n", st.Islands)
	if position < grid.NumberOfTimestamps() {
		fmt.Fprintf(w, "\nbounds at %s:\n", grid.TimestampAt(position))
	} else {
		fmt.Fprintf(w, "\nbounds at position %d:\n", position)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBUS\tGEN MIN\tGEN MAX\tLOAD MIN\tLOAD MAX")
	for _, b := range coremetrics.CollectBusBounds(grid, position) {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%g\t%g\n", b.VertexID, b.Bus, b.GenerationMin, b.GenerationMax, b.LoadMin, b.LoadMax)
	}
	return tw.Flush()
}
