package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/heatsim/internal/logger"
	"github.com/san-kum/heatsim/internal/materials"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/tui"
	"github.com/san-kum/heatsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	catalogFile string
	theme       string
	debug       bool

	closeLog func() error
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "heatsim",
		Short: "lumped-capacitance heat exchange simulator",
		Long: "heatsim simulates heat exchange between bodies and their environment.\n" +
			"Run without a command to start the interactive wizard.",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			return tui.RunWizard(cat, tui.WithStore(st), tui.WithLogger(logger.L()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "material catalog file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeEmber.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	rootCmd.AddCommand(
		newSimpleCmd(),
		newMultibodyCmd(),
		newPairCmd(),
		newRunCmd(),
		newCompareCmd(),
		newMaterialsCmd(),
		newCoefficientsCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newEnergyCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
	)

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	viz.SetTheme(theme)

	cleanup, err := logger.Setup(logger.Config{DataDir: dataDir, Debug: debug})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		return nil
	}
	closeLog = cleanup
	if debug {
		fmt.Fprintf(cmd.ErrOrStderr(), "debug log: %s\n", logger.Path())
	}
	logger.L().Debug("cli.command", "name", cmd.Name(), "args", args)
	return nil
}

func loadCatalog() (*materials.Catalog, error) {
	if catalogFile != "" {
		return materials.LoadFile(catalogFile)
	}
	return materials.Load()
}
