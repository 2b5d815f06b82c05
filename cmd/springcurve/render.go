package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/springcurve/internal/automation"
	"github.com/san-kum/springcurve/internal/export"
)

var (
	caption     bool
	recordEvery int
)

func renderCommands() []*cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file.svg|file.png]",
		Short: "run along a path and render the final frame",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().BoolVar(&caption, "caption", false, "label the image with path and frame")

	recordCmd := &cobra.Command{
		Use:   "record [file.gif]",
		Short: "record an animated gif along a path",
		Args:  cobra.ExactArgs(1),
		RunE:  record,
	}
	addRunFlags(recordCmd)
	recordCmd.Flags().IntVar(&recordEvery, "every", 2, "keep one of every n frames")

	return []*cobra.Command{snapshotCmd, recordCmd}
}

func snapshot(cmd *cobra.Command, args []string) error {
	name := args[0]
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".svg" && ext != ".png" {
		return fmt.Errorf("unsupported snapshot format %q (want .svg or .png)", filepath.Ext(name))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
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

	result, err := s.Run(cmd.Context(), cfg.SimConfig(), path)
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return result.Errors[0]
	}

	label := fmt.Sprintf("%s  frame %d", cfg.Path, result.StepsTaken)
	err = writeOutput(name, func(w io.Writer) error {
		if ext == ".svg" {
			svg := export.NewSVG(float64(cfg.Width), float64(cfg.Height), s.Style().Background)
			s.Draw(svg)
			if caption {
				svg.Caption(label, s.Style().Curve)
			}
			_, err := svg.WriteTo(w)
			return err
		}
		raster := export.NewRaster(cfg.Width, cfg.Height, s.Style().Background)
		s.Draw(raster)
		if caption {
			if err := raster.Caption(label, s.Style().Curve); err != nil {
				return err
			}
		}
		return raster.EncodePNG(w)
	})
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", name)
	return nil
}

func record(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
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

	fmt.Printf("recording %d frames of the %s path...\n", cfg.Frames, cfg.Path)
	rec, err := export.Record(cmd.Context(), s, path, cfg.Width, cfg.Height, export.RecordOptions{
		Frames: cfg.Frames,
		Every:  recordEvery,
		FPS:    cfg.FPS,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(args[0], rec.Encode); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", args[0], rec.Len())
	return nil
}

// writeOutput creates name and fills it with write. The file is removed
// again if writing or closing fails.
func writeOutput(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(name)
	}
	return err
}
