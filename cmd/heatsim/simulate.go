package main

import (
	"fmt"
	"os"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/logger"
	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/tui"
	"github.com/san-kum/heatsim/internal/viz"
	"github.com/spf13/cobra"
)

// Shared by every simulating command.
var (
	dt           float64
	tMax         float64
	tAmb         float64
	outputFile   string
	scenarioFile string
	noPlot       bool
	live         bool
	frameRate    int
	metricList   []string
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
	cmd.Flags().Float64Var(&tMax, "t-max", config.DefaultDuration, "total simulated time (s)")
	cmd.Flags().Float64Var(&tAmb, "t-amb", config.DefaultAmbient, "ambient temperature (°C)")
	cmd.Flags().StringVar(&outputFile, "output", "", "also write temperatures to this CSV file")
	cmd.Flags().StringVar(&scenarioFile, "save-scenario", "", "write the scenario as YAML, reusable with 'run --config'")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the temperature plot")
	cmd.Flags().BoolVar(&live, "live", false, "show temperatures while simulating")
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	cmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to collect (default all)")
}

func newSimpleCmd() *cobra.Command {
	var (
		material string
		mass     float64
		area     float64
		tInit    float64
		coefConv float64
		coefKey  string
	)

	cmd := &cobra.Command{
		Use:   "simple",
		Short: "one body of a catalog material cooling or heating towards ambient",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			mat, err := cat.Lookup(material)
			if err != nil {
				return err
			}
			if coefKey != "" {
				c, err := cat.Coefficient(coefKey)
				if err != nil {
					return err
				}
				coefConv = c.Value
			}

			cfg := config.DefaultConfig()
			cfg.Mode = sim.ModeAmbient.String()
			cfg.Dt = dt
			cfg.Duration = tMax
			cfg.Ambient = config.AmbientConfig{Temperature: tAmb, Convection: coefConv}
			cfg.Bodies = []config.BodyConfig{{
				Name:         mat.Name,
				Material:     mat.Name,
				Mass:         mass,
				SpecificHeat: mat.SpecificHeat,
				Area:         area,
				Temperature:  tInit,
			}}
			return simulate(cmd, cfg, "simple")
		},
	}

	cmd.Flags().StringVar(&material, "material", "", "material name or id")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	cmd.Flags().Float64Var(&area, "area", config.DefaultArea, "surface area (m²)")
	cmd.Flags().Float64Var(&tInit, "t-init", config.DefaultTemperature, "initial temperature (°C)")
	cmd.Flags().Float64Var(&coefConv, "coef-conv", config.DefaultConvection, "convection coefficient (W/m²·K)")
	cmd.Flags().StringVar(&coefKey, "coefficient", "", "convection coefficient preset key, overrides --coef-conv")
	cmd.MarkFlagRequired("material")
	addRunFlags(cmd)
	return cmd
}

func newMultibodyCmd() *cobra.Command {
	var (
		tInit []float64
		m     []float64
		c     []float64
		areas []float64
		g     string
		gEnv  []float64
		h     float64
	)

	cmd := &cobra.Command{
		Use:   "multibody",
		Short: "several bodies coupled by a conductance matrix",
		Example: "  heatsim multibody --t-init 80,30,10 --m 2,1,0.5 --c 900,900,900 \\\n" +
			"    --g '0,5,0;5,0,3;0,3,0' --g-env 1,0.5,0.2",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("area") {
				areas = nil
			}
			bodies, err := config.BodiesFromLists(tInit, m, c, areas)
			if err != nil {
				return err
			}
			matrix, err := config.ParseMatrix(g)
			if err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			cfg.Mode = sim.ModeAmbient.String()
			if matrix != nil {
				cfg.Mode = sim.ModeCoupled.String()
			}
			cfg.Dt = dt
			cfg.Duration = tMax
			cfg.Ambient = config.AmbientConfig{Temperature: tAmb, Convection: h}
			if cmd.Flags().Changed("g-env") {
				cfg.Ambient.Coefficients = gEnv
			}
			cfg.Bodies = bodies
			cfg.Conductance = matrix
			return simulate(cmd, cfg, "multibody")
		},
	}

	cmd.Flags().Float64SliceVar(&tInit, "t-init", nil, "initial temperatures (°C), e.g. 80,30,10")
	cmd.Flags().Float64SliceVar(&m, "m", nil, "masses (kg), e.g. 2,1,0.5")
	cmd.Flags().Float64SliceVar(&c, "c", nil, "specific heats (J/(kg·K)), e.g. 900,900,900")
	cmd.Flags().Float64SliceVar(&areas, "area", nil, "surface areas (m²), default 0.1 each")
	cmd.Flags().StringVar(&g, "g", "", "conductance matrix, rows split by ';', e.g. '0,5,0;5,0,3;0,3,0'")
	cmd.Flags().Float64SliceVar(&gEnv, "g-env", nil, "per-body ambient coefficients (W/m²·K)")
	cmd.Flags().Float64Var(&h, "coef-conv", config.DefaultConvection, "ambient coefficient when --g-env is not given")
	cmd.MarkFlagRequired("t-init")
	cmd.MarkFlagRequired("m")
	cmd.MarkFlagRequired("c")
	addRunFlags(cmd)
	return cmd
}

func newPairCmd() *cobra.Command {
	var (
		tInit     []float64
		m         []float64
		c         []float64
		k         float64
		area      float64
		thickness float64
	)

	def := sim.DefaultPair()
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "two bodies exchanging heat by conduction only",
		RunE: func(cmd *cobra.Command, args []string) error {
			bodies, err := config.BodiesFromLists(tInit, m, c, nil)
			if err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			cfg.Mode = sim.ModePair.String()
			cfg.Dt = dt
			cfg.Duration = tMax
			cfg.Ambient.Temperature = tAmb
			cfg.Bodies = bodies
			cfg.Pair = config.PairConfig{A: 0, B: 1, K: k, Area: area, Thickness: thickness}
			return simulate(cmd, cfg, "pair")
		},
	}

	cmd.Flags().Float64SliceVar(&tInit, "t-init", []float64{100, 20}, "initial temperatures (°C) of the two bodies")
	cmd.Flags().Float64SliceVar(&m, "m", []float64{1, 1}, "masses (kg)")
	cmd.Flags().Float64SliceVar(&c, "c", []float64{900, 900}, "specific heats (J/(kg·K))")
	cmd.Flags().Float64Var(&k, "k", def.K, "thermal conductivity (W/m·K)")
	cmd.Flags().Float64Var(&area, "contact-area", def.Area, "contact area (m²)")
	cmd.Flags().Float64Var(&thickness, "thickness", def.Thickness, "contact thickness (m)")
	addRunFlags(cmd)
	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		configFile string
		preset     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario from a YAML file or a preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadScenario(configFile, preset)
			if err != nil {
				return err
			}

			// flags override the scenario only when given
			if cmd.Flags().Changed("dt") {
				cfg.Dt = dt
			}
			if cmd.Flags().Changed("t-max") {
				cfg.Duration = tMax
			}
			if cmd.Flags().Changed("t-amb") {
				cfg.Ambient.Temperature = tAmb
			}
			return simulate(cmd, cfg, source)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset name, see 'heatsim presets'")
	cmd.MarkFlagsMutuallyExclusive("config", "preset")
	addRunFlags(cmd)
	return cmd
}

// loadScenario resolves a scenario from a file, a preset, or the defaults, and fills
// specific heats from the catalog.
func loadScenario(configFile, preset string) (*config.Config, string, error) {
	var (
		cfg    *config.Config
		source string
	)
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg, source = loaded, configFile
	case preset != "":
		cfg = config.FindPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s", preset)
		}
		source = "preset:" + preset
	default:
		cfg, source = config.DefaultConfig(), "default"
	}

	cat, err := loadCatalog()
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Resolve(cat); err != nil {
		return nil, "", err
	}
	return cfg, source, nil
}

// simulate runs cfg, saves the run and prints the outcome.
func simulate(cmd *cobra.Command, cfg *config.Config, source string) error {
	log := logger.L()
	out := cmd.OutOrStdout()

	exp := experiment.New(cfg, sim.WithLogger(log))
	ms, err := experiment.NewRegistry().Metrics(metricList, cfg.Ambient.Temperature)
	if err != nil {
		return err
	}
	if err := exp.Setup(ms); err != nil {
		return err
	}
	if scenarioFile != "" {
		if err := config.Save(scenarioFile, cfg); err != nil {
			return fmt.Errorf("failed to save scenario: %w", err)
		}
		fmt.Fprintf(out, "scenario written to %s\n", scenarioFile)
	}

	if live {
		names := make([]string, len(cfg.Bodies))
		for i, b := range cfg.Bodies {
			names[i] = b.Name
		}
		r := tui.NewLiveRenderer(out, names, frameRate)
		exp.Engine().AddObserver(r)
		r.Start()
		defer r.Stop()
	}

	fmt.Fprintf(out, "running %s simulation with %d bodies...\n", exp.Mode(), len(cfg.Bodies))
	res, err := exp.Run(cmd.Context())
	if err != nil {
		log.Error("cli.simulate.failed", "source", source, "err", err)
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	capacities := make([]float64, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		capacities[i] = b.Mass * b.SpecificHeat
	}
	runID, err := st.Save(storage.RunMetadata{
		Mode:       exp.Mode().String(),
		Source:     source,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Ambient:    cfg.Ambient.Temperature,
		Capacities: capacities,
	}, res)
	if err != nil {
		return err
	}
	log.Info("cli.run.saved", "id", runID, "steps", res.StepsTaken)

	fmt.Fprintln(out, viz.Summary(res, cfg.Ambient.Temperature))
	fmt.Fprintf(out, "run id: %s\n", runID)

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.WriteCSV(f, res.Series); err != nil {
			return err
		}
		fmt.Fprintf(out, "results written to %s\n", outputFile)
	}

	if !noPlot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.PlotTemperatures(res.Series, viz.PlotOptions{}))
	}
	return nil
}
