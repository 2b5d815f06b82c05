package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/springcurve/internal/automation"
	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/metrics"
	"github.com/san-kum/springcurve/internal/optim"
	"github.com/san-kum/springcurve/internal/sim"
	"github.com/san-kum/springcurve/internal/storage"
	"github.com/san-kum/springcurve/internal/tui"
)

var (
	live       bool
	liveFPS    int
	tuneSteps  int
	tuneMetric string
	tuneSave   string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func runCommands() []*cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headlessly along a pointer path and save the run",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "print frames to the terminal while running")
	runCmd.Flags().IntVar(&liveFPS, "live-fps", 30, "terminal refresh rate for --live")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a yaml scenario and save the runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search stiffness and damping for the lowest metric",
		Args:  cobra.NoArgs,
		RunE:  tuneParams,
	}
	addRunFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 6, "grid points per parameter")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "settle_frame", "metric to minimize")
	tuneCmd.Flags().StringVar(&tuneSave, "save", "", "write the tuned config to this file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run once per value of a parameter and tabulate the metrics",
		Args:  cobra.NoArgs,
		RunE:  sweepParams,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "stiffness", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.005, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.08, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same path",
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	return []*cobra.Command{runCmd, scenarioCmd, tuneCmd, sweepCmd, compareCmd}
}

func metadata(cfg *config.Config, result *sim.Result) storage.RunMetadata {
	return storage.RunMetadata{
		Path:       cfg.Path,
		Preset:     preset,
		Integrator: cfg.Integrator,
		FPS:        cfg.FPS,
		Frames:     result.StepsTaken,
		Width:      float64(cfg.Width),
		Height:     float64(cfg.Height),
		Params:     cfg.Params(),
	}
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(m) {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := cfg.NewSimulator()
	if err != nil {
		return err
	}
	path, err := automation.GetPath(cfg.Path)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	if live {
		r := tui.NewLiveRenderer(os.Stdout, cfg.Path, liveFPS, s.Style())
		r.Start()
		defer r.Stop()
		s.AddObserver(r)
	} else {
		fmt.Printf("running %s path for %d frames...\n", cfg.Path, cfg.Frames)
	}

	start := time.Now()
	result, err := s.Run(cmd.Context(), cfg.SimConfig(), path)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(metadata(cfg, result), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("stopped: %v\n", e)
	}
	printMetrics(result.Metrics)

	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}

	results, err := automation.RunScenario(cmd.Context(), sc, base)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tPATH\tFRAMES\tENERGY\tSETTLE\tRUN")
	for _, r := range results {
		runID, err := st.Save(metadata(r.Config, r.Result), r.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.0f\t%s\n",
			r.Step.Name,
			r.Config.Path,
			r.Result.StepsTaken,
			r.Result.Metrics["kinetic_energy"],
			r.Result.Metrics["settle_frame"],
			runID,
		)
	}
	return w.Flush()
}

func tuneParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := []string{"stiffness", "damping"}
	g := optim.NewGridSearch(names, [][]float64{
		optim.Linspace(0.005, 0.1, tuneSteps),
		optim.Linspace(0.7, 0.98, tuneSteps),
	})

	fmt.Printf("searching %d combinations on the %s path for minimal %s...\n", g.Size(), cfg.Path, tuneMetric)
	start := time.Now()
	best, score, err := g.Search(cmd.Context(), optim.MetricObjective(cfg, tuneMetric))
	if err != nil {
		return err
	}

	fmt.Printf("done in %v\n\n", time.Since(start))
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, best[name])
	}
	fmt.Printf("  %s: %.4f\n", tuneMetric, score)

	if tuneSave != "" {
		tuned := cfg.Clone()
		for k, v := range best {
			if err := tuned.SetParam(k, v); err != nil {
				return err
			}
		}
		if err := config.Save(tuneSave, tuned); err != nil {
			return err
		}
		fmt.Printf("\nsaved %s\n", tuneSave)
	}
	return nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, cfg)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		return nil
	}
	cols := sortedKeys(results[0].Metrics)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(cols, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.ParamValue)
		for _, c := range cols {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[c])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	ens := sim.NewEnsemble(len(names), func(idx int) (*sim.Simulator, sim.PointerPath, error) {
		c := cfg.Clone()
		c.Integrator = names[idx]
		s, err := c.NewSimulator()
		if err != nil {
			return nil, nil, err
		}
		for _, m := range metrics.Defaults() {
			s.AddMetric(m)
		}
		path, err := automation.GetPath(c.Path)
		return s, path, err
	})

	results, err := ens.Run(cmd.Context(), cfg.SimConfig())
	if err != nil {
		return err
	}

	fmt.Printf("path: %s, frames: %d\n\n", cfg.Path, cfg.Frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tENERGY\tSETTLE\tINTRUSION\tFINAL P1")
	for i, r := range results {
		last := r.States[len(r.States)-1]
		fmt.Fprintf(w, "%s\t%.4f\t%.0f\t%.3f\t(%.1f, %.1f)\n",
			names[i],
			r.Metrics["kinetic_energy"],
			r.Metrics["settle_frame"],
			r.Metrics["margin_intrusion"],
			last[0], last[1],
		)
	}
	return w.Flush()
}
