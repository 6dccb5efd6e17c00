package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/ecosim/internal/analysis"
	"github.com/san-kum/ecosim/internal/config"
	"github.com/san-kum/ecosim/internal/ecosys"
	"github.com/san-kum/ecosim/internal/experiment"
	"github.com/san-kum/ecosim/internal/export"
	"github.com/san-kum/ecosim/internal/logging"
	"github.com/san-kum/ecosim/internal/sim"
	"github.com/san-kum/ecosim/internal/storage"
	"github.com/san-kum/ecosim/internal/tui"
	"github.com/san-kum/ecosim/internal/viz"
)

var (
	dataDir    string
	configFile string
	horizon    float64
	// Parameter overrides
	preyInit     float64
	birthRate    float64
	capacity     float64
	predatorInit float64
	hunting      float64
	deathRate    float64
	resource     float64
	seasonal     bool
	amplitude    float64
	// Run options
	noSave   bool
	showPlot bool
	verbose  bool
	// Live view
	frameRate int
	speed     float64
	// Phase sampling
	resolution int
	// Sweep axes
	xParam string
	xMin   float64
	xMax   float64
	xSteps int
	yParam string
	yMin   float64
	yMax   float64
	ySteps int
	// SVG export
	outFile   string
	phasePlot bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecosim",
		Short: "deterministic predator-prey ecosystem simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ecosim", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation to completion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot trajectories after the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().Float64Var(&speed, "speed", 2.0, "simulated time units per second")

	predictCmd := &cobra.Command{
		Use:   "predict [preset]",
		Short: "analytic equilibrium estimate",
		Args:  cobra.MaximumNArgs(1),
		RunE:  predictEquilibrium,
	}
	addScenarioFlags(predictCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase [preset]",
		Short: "sample and render the phase-space direction field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  samplePhase,
	}
	addScenarioFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&resolution, "resolution", 13, "grid resolution per axis")
	phaseCmd.Flags().StringVar(&outFile, "out", "", "write field as JSON instead of ASCII")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "outcome map over a two-parameter grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&xParam, "x-param", "predator.hunting_efficiency", "x axis parameter")
	sweepCmd.Flags().Float64Var(&xMin, "x-min", 0.005, "x axis minimum")
	sweepCmd.Flags().Float64Var(&xMax, "x-max", 0.05, "x axis maximum")
	sweepCmd.Flags().IntVar(&xSteps, "x-steps", 10, "x axis samples")
	sweepCmd.Flags().StringVar(&yParam, "y-param", "environment.resource_availability", "y axis parameter")
	sweepCmd.Flags().Float64Var(&yMin, "y-min", 0.1, "y axis minimum")
	sweepCmd.Flags().Float64Var(&yMax, "y-max", 1.0, "y axis maximum")
	sweepCmd.Flags().IntVar(&ySteps, "y-steps", 10, "y axis samples")
	sweepCmd.Flags().StringVar(&outFile, "out", "", "write cells as JSON")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default [run_id].svg)")
	exportSVGCmd.Flags().BoolVar(&phasePlot, "phase", false, "plot predator vs prey instead of time series")

	rootCmd.AddCommand(runCmd, liveCmd, predictCmd, phaseCmd, sweepCmd, presetsCmd, listCmd, plotCmd, exportCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&horizon, "horizon", ecosys.DefaultHorizon, "simulated time horizon")
	cmd.Flags().Float64Var(&preyInit, "prey", 1000, "initial prey population")
	cmd.Flags().Float64Var(&birthRate, "birth-rate", 1.0, "prey birth rate")
	cmd.Flags().Float64Var(&capacity, "capacity", 5000, "prey carrying capacity")
	cmd.Flags().Float64Var(&predatorInit, "predator", 100, "initial predator population")
	cmd.Flags().Float64Var(&hunting, "hunting", 0.01, "predator hunting efficiency")
	cmd.Flags().Float64Var(&deathRate, "death-rate", 0.5, "predator death rate")
	cmd.Flags().Float64Var(&resource, "resource", 0.7, "base resource availability")
	cmd.Flags().BoolVar(&seasonal, "seasonal", false, "enable seasonal resource forcing")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 0.0, "seasonal amplitude")
}

// resolveConfig builds the scenario from preset, config file, and
// flags, in increasing precedence.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		cfg = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("horizon") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("prey") {
		cfg.Prey.InitialPopulation = preyInit
	}
	if cmd.Flags().Changed("birth-rate") {
		cfg.Prey.BirthRate = birthRate
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Prey.CarryingCapacity = capacity
	}
	if cmd.Flags().Changed("predator") {
		cfg.Predator.InitialPopulation = predatorInit
	}
	if cmd.Flags().Changed("hunting") {
		cfg.Predator.HuntingEfficiency = hunting
	}
	if cmd.Flags().Changed("death-rate") {
		cfg.Predator.DeathRate = deathRate
	}
	if cmd.Flags().Changed("resource") {
		cfg.Environment.ResourceAvailability = resource
	}
	if cmd.Flags().Changed("seasonal") {
		cfg.Environment.SeasonalVariation = seasonal
	}
	if cmd.Flags().Changed("amplitude") {
		cfg.Environment.SeasonalAmplitude = amplitude
	}

	return cfg, nil
}

func newEngine(cmd *cobra.Command, args []string) (*sim.Engine, *config.Config, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	eng, err := sim.New(cfg.Parameters(), sim.WithHorizon(cfg.Horizon))
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}

func runContext() context.Context {
	log := logging.New()
	if verbose {
		log = logging.NewDebug()
	}
	return logging.NewContext(context.Background(), log)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	eng, cfg, err := newEngine(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("running scenario %s...\n", cfg.Name)
	start := time.Now()

	result, err := eng.Run(runContext())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Print(viz.SummaryTable(result))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Name, cfg.Horizon, cfg.Parameters(), result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	if showPlot {
		fmt.Println()
		fmt.Println(viz.PlotRecords(result.Records, 80, 10))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	eng, cfg, err := newEngine(cmd, args)
	if err != nil {
		return err
	}
	if err := tui.Run(eng, cfg.Name, frameRate, speed); err != nil {
		return err
	}
	fmt.Print(viz.SummaryTable(eng.Result()))
	return nil
}

func predictEquilibrium(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	pred, err := analysis.PredictEquilibrium(cfg.Parameters())
	if err != nil {
		return err
	}

	fmt.Printf("scenario:  %s\n", cfg.Name)
	fmt.Printf("prey:      %.1f\n", pred.Prey)
	fmt.Printf("predator:  %.1f\n", pred.Predator)
	fmt.Printf("stable:    %v\n", pred.Stable)
	return nil
}

func samplePhase(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	field, err := analysis.SamplePhaseSpace(cfg.Parameters(), resolution)
	if err != nil {
		return err
	}

	if outFile != "" {
		data, err := json.MarshalIndent(field, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(outFile, data, 0644)
	}

	fmt.Printf("scenario: %s  grid: %dx%d\n\n", cfg.Name, field.Resolution, field.Resolution)
	fmt.Println(viz.DirectionFieldASCII(field, 2*resolution, resolution))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	x := experiment.Axis{Param: xParam, Min: xMin, Max: xMax, Steps: xSteps}
	y := experiment.Axis{Param: yParam, Min: yMin, Max: yMax, Steps: ySteps}
	sweep := experiment.NewSweep(cfg.Parameters(), x, y, cfg.Horizon)

	fmt.Printf("sweeping %s x %s (%d cells)...\n", xParam, yParam, xSteps*ySteps)
	start := time.Now()

	cells, err := sweep.Run(runContext())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	if outFile != "" {
		data, err := json.MarshalIndent(cells, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(outFile, data, 0644)
	}

	printSweepGrid(cells, x, y)
	return nil
}

// printSweepGrid renders the outcome map with y increasing upward.
func printSweepGrid(cells []experiment.Cell, x, y experiment.Axis) {
	glyphs := map[experiment.Outcome]string{
		experiment.OutcomeEquilibrium: "=",
		experiment.OutcomeExtinction:  "x",
		experiment.OutcomeCyclic:      "~",
	}

	xs, ys := x.Values(), y.Values()
	for row := len(ys) - 1; row >= 0; row-- {
		fmt.Printf("%8.3f  ", ys[row])
		for col := range xs {
			fmt.Print(glyphs[cells[col*len(ys)+row].Outcome])
		}
		fmt.Println()
	}
	fmt.Printf("%10s%s: %.3f .. %.3f\n", "", x.Param, x.Min, x.Max)
	fmt.Println("\n= equilibrium  x extinction  ~ cyclic")
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tHORIZON\tOUTCOME")

	for _, run := range runs {
		outcome := "horizon"
		if run.ExtinctionOccurred {
			outcome = "extinction"
		} else if run.EquilibriumReached {
			outcome = "equilibrium"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Horizon,
			outcome,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	records, err := st.LoadRecords(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(records))
	fmt.Println(viz.PlotRecords(records, 80, 10))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	records, err := st.LoadRecords(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to export")
	}

	var svg string
	if phasePlot {
		svg = export.PhaseToSVG(records, 800, 600)
	} else {
		svg = export.SeriesToSVG(records, 800, 600)
	}

	out := outFile
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
