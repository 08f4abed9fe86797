package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/logger"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var (
		configFile string
		preset     string
		dts        []float64
		tolerance  float64
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "rerun a scenario at several time steps and compare accuracy",
		Long: "compare reruns a scenario once per time step, in parallel. Ambient scenarios\n" +
			"are checked against the exact exponential solution; others against the run\n" +
			"with the smallest time step.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadScenario(configFile, preset)
			if err != nil {
				return err
			}

			points, err := experiment.Sweep(cmd.Context(), cfg, dts, sim.WithLogger(logger.L()))
			if err != nil {
				return err
			}

			reference := "analytical solution"
			if mode, _ := config.ParseMode(cfg.Mode); mode != sim.ModeAmbient {
				reference = fmt.Sprintf("dt=%g", points[0].Dt)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s scenario, %gs, compared against %s\n\n", cfg.Mode, cfg.Duration, reference)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "dt\tsteps\telapsed\tmax deviation\t")
			for _, p := range points {
				dev := fmt.Sprintf("%.3e °C", p.Deviation)
				if p.Unstable {
					dev = "unstable"
				}
				fmt.Fprintf(w, "%g\t%d\t%g\t%s\t\n", p.Dt, p.Steps, p.Elapsed, dev)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if best, ok := experiment.LargestStable(points, tolerance); ok {
				fmt.Fprintf(out, "\nlargest dt within %g °C: %g s\n", tolerance, best.Dt)
			} else {
				fmt.Fprintf(out, "\nno dt within %g °C\n", tolerance)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
	cmd.Flags().Float64SliceVar(&dts, "dts", []float64{10, 5, 1, 0.5, 0.1}, "time steps to compare (s)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.1, "accepted deviation (°C)")
	cmd.MarkFlagsMutuallyExclusive("config", "preset")
	return cmd
}
