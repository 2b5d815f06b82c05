package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/gui"
	"github.com/san-kum/springcurve/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	// run settings, applied over the config when set
	integrator string
	pathName   string
	frames     int
	fps        int
	width      int
	height     int

	withAudio bool
	theme     string
)

// main registers the commands, opens the window when no subcommand is given,
// and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "springcurve",
		Short:         "a Bézier curve whose control points chase the pointer on springs",
		SilenceUsage:  true,
		RunE:          runGUI,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springcurve", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset applied over the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addSizeFlags(rootCmd)
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the motion")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the window (default)",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSizeFlags(guiCmd)
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the motion")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal, following the mouse",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "config", "color theme ("+joinNames(viz.ThemeNames())+")")
	tuiCmd.Flags().StringVar(&integrator, "integrator", "", "integrator")
	tuiCmd.Flags().IntVar(&fps, "fps", 0, "frame rate")

	rootCmd.AddCommand(guiCmd, tuiCmd)
	rootCmd.AddCommand(runCommands()...)
	rootCmd.AddCommand(inspectCommands()...)
	rootCmd.AddCommand(renderCommands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setupLogging(out *os.File) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	dynamo.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
}

func addSizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 0, "surface width")
	cmd.Flags().IntVar(&height, "height", 0, "surface height")
	cmd.Flags().IntVar(&fps, "fps", 0, "frame rate")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator (euler, harmonica)")
}

func addRunFlags(cmd *cobra.Command) {
	addSizeFlags(cmd)
	cmd.Flags().StringVar(&pathName, "path", "", "pointer path")
	cmd.Flags().IntVar(&frames, "frames", 0, "number of frames")
}

// loadConfig builds the effective config: file (or defaults), then preset,
// then any flags that were set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		if err := cfg.Apply(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("path") {
		cfg.Path = pathName
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.NewSimulator()
	if err != nil {
		return err
	}
	return gui.Run(cmd.Context(), s, gui.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Title:  "springcurve",
		Audio:  withAudio,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the alt screen owns the terminal
	if !verbose {
		dynamo.SetLogger(nil)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.NewSimulator()
	if err != nil {
		return err
	}
	return viz.Run(s, viz.Options{FPS: cfg.FPS, Theme: theme})
}
