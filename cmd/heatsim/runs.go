package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	plotHeight int
	plotWidth  int
	exportOut  string
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot temperatures of a run (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(cmd)
	return cmd
}

func newEnergyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy [run_id]",
		Short: "plot heat stored in each body of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotEnergy,
	}
	addPlotFlags(cmd)
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run temperatures to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and temperatures to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	return cmd
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&plotHeight, "height", viz.DefaultHeight, "plot height")
	cmd.Flags().IntVar(&plotWidth, "width", viz.DefaultWidth, "plot width")
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tSOURCE\tTIME\tSTEPS\tDT\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%gs\t%s\n",
			run.ID,
			run.Mode,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			strings.Join(run.Bodies, ","),
		)
	}

	return w.Flush()
}

// loadRun returns the run named in args, or the latest one.
func loadRun(args []string) (*storage.Store, *storage.RunMetadata, error) {
	st := storage.New(dataDir)
	if len(args) == 0 {
		meta, err := st.Latest()
		return st, meta, err
	}
	meta, err := st.Load(args[0])
	return st, meta, err
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, meta, err := loadRun(args)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "mode: %s\n\n", meta.Mode)
	fmt.Fprintln(out, viz.PlotTemperatures(series, viz.PlotOptions{Height: plotHeight, Width: plotWidth}))
	return nil
}

func plotEnergy(cmd *cobra.Command, args []string) error {
	st, meta, err := loadRun(args)
	if err != nil {
		return err
	}
	if len(meta.Capacities) == 0 {
		return fmt.Errorf("run %s has no heat capacities recorded", meta.ID)
	}
	series, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}

	chart, err := viz.PlotEnergy(series, meta.Capacities, viz.PlotOptions{Height: plotHeight, Width: plotWidth})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "run: %s\n\n%s\n", meta.ID, chart)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, meta, err := loadRun(args)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}

	return withOutput(cmd, func(w io.Writer) error {
		return storage.WriteCSV(w, series)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, meta, err := loadRun(args)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(meta.ID)
	if err != nil {
		return err
	}

	return withOutput(cmd, func(w io.Writer) error {
		return storage.WriteJSON(w, meta, series)
	})
}

func withOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	if exportOut == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", exportOut)
	return nil
}
