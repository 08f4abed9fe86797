package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/spf13/cobra"
)

func newMaterialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "list catalog materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIFIC HEAT\tDENSITY\tUSED FOR")
			for _, m := range cat.List() {
				fmt.Fprintf(w, "%d\t%s\t%g %s\t%g kg/m³\t%s\n",
					m.ID, m.Name, m.SpecificHeat, m.Unit, m.Density, strings.Join(m.Applications, ", "))
			}
			return w.Flush()
		},
	}
}

func newCoefficientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coefficients",
		Short: "list typical convection coefficients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tDESCRIPTION\tVALUE\tRANGE")
			for _, c := range cat.ListCoefficients() {
				fmt.Fprintf(w, "%s\t%s\t%g W/m²·K\t%s\n", c.Key, c.Description, c.Value, c.Range)
			}
			return w.Flush()
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [mode]",
		Short: "list scenario presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			modes := config.ListModes()
			if len(args) > 0 {
				modes = args
			}

			for _, mode := range modes {
				presets := config.ListPresets(mode)
				if len(presets) == 0 {
					fmt.Fprintf(out, "no presets for mode: %s\n", mode)
					continue
				}
				fmt.Fprintf(out, "%s:\n", mode)
				for _, p := range presets {
					cfg := config.GetPreset(mode, p)
					fmt.Fprintf(out, "  %-10s %d bodies, %gs at dt=%gs\n", p, len(cfg.Bodies), cfg.Duration, cfg.Dt)
				}
			}
			return nil
		},
	}
}
