package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/springcurve/internal/analysis"
	"github.com/san-kum/springcurve/internal/automation"
	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/integrators"
	"github.com/san-kum/springcurve/internal/storage"
)

var (
	xAxis     int
	yAxis     int
	column    int
	outFile   string
	plotLimit int
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func inspectCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotLimit, "columns", 4, "number of state columns to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&column, "column", 0, "state column ("+strings.Join(storage.StateColumns, ", ")+" by index)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 2, "state index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets, pointer paths and integrators",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(headerStyle.Render("presets"))
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println(headerStyle.Render("paths"))
			for _, p := range automation.ListPaths() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println(headerStyle.Render("integrators"))
			for _, n := range integrators.Names() {
				fmt.Printf("  %s\n", n)
			}
		},
	}

	return []*cobra.Command{listCmd, plotCmd, analyzeCmd, phaseCmd, exportCSVCmd, exportJSONCmd, presetsCmd}
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
	fmt.Fprintln(w, "ID\tPATH\tTIME\tFRAMES\tFPS\tINTEG\tSIZE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.0fx%.0f\n",
			run.ID,
			run.Path,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FPS,
			run.Integrator,
			run.Width, run.Height,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("path: %s\n", meta.Path)
	fmt.Printf("samples: %d\n\n", len(result.States))

	n := min(plotLimit, len(storage.StateColumns))
	for idx := 0; idx < n; idx++ {
		graph := asciigraph.Plot(analysis.Column(result.States, idx),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(storage.StateColumns[idx]+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	if column < 0 || column >= len(storage.StateColumns) {
		return fmt.Errorf("column %d out of range", column)
	}
	if len(result.States) < 4 {
		return fmt.Errorf("not enough samples")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("path: %s\n\n", meta.Path)

	data := analysis.Column(result.States, column)
	ps := analysis.PowerSpectrum(data)
	plotData := ps[:max(len(ps)/4, 2)]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+storage.StateColumns[column]+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, float64(meta.FPS))
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s (%.1f frames)\n", 1.0/freq, float64(meta.FPS)/freq)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	_, result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	n := len(storage.StateColumns)
	if xAxis < 0 || xAxis >= n || yAxis < 0 || yAxis >= n {
		return fmt.Errorf("axes must be in [0, %d)", n)
	}

	p := analysis.NewPhasePortrait(result.States, xAxis, yAxis)
	if p == nil {
		return fmt.Errorf("no data to plot")
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("phase portrait: %s vs %s", storage.StateColumns[yAxis], storage.StateColumns[xAxis])))
	fmt.Println(p.ASCII(80, 24))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("%d points", len(p.Points))))
	return nil
}

// output returns the writer for --out and a function that closes it.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	in, err := st.OpenStates(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteJSON(out, *meta, result); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
