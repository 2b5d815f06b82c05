package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/springcurve/internal/config"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addRunFlags(cmd)
	return cmd
}

func resetGlobals(t *testing.T) {
	t.Helper()
	configFile, preset = "", ""
	t.Cleanup(func() { configFile, preset = "", "" })
}

func TestLoadConfig_Precedence(t *testing.T) {
	resetGlobals(t)

	file := filepath.Join(t.TempDir(), "cfg.yaml")
	base := config.DefaultConfig()
	base.Path = "figure8"
	base.Frames = 50
	if err := config.Save(file, base); err != nil {
		t.Fatal(err)
	}
	configFile = file
	preset = "stiff"

	cmd := newTestCommand()
	if err := cmd.ParseFlags([]string{"--frames", "75", "--integrator", "harmonica"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "figure8" {
		t.Errorf("path from file lost: %s", cfg.Path)
	}
	if cfg.Physics.Stiffness != 0.08 {
		t.Errorf("preset not applied: %v", cfg.Physics.Stiffness)
	}
	if cfg.Frames != 75 || cfg.Integrator != "harmonica" {
		t.Errorf("flags not applied: %d %s", cfg.Frames, cfg.Integrator)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	resetGlobals(t)

	cmd := newTestCommand()
	if err := cmd.ParseFlags([]string{"--width", "-5"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected validation error")
	}

	preset = "bouncy"
	if _, err := loadConfig(newTestCommand()); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	resetGlobals(t)
	configFile = filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := loadConfig(newTestCommand()); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSnapshot_UnsupportedFormat(t *testing.T) {
	resetGlobals(t)
	name := filepath.Join(t.TempDir(), "curve.bmp")

	if err := snapshot(newTestCommand(), []string{name}); err == nil {
		t.Fatal("expected an error for .bmp")
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Errorf("unsupported format left a file behind: %v", err)
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()

	ok := filepath.Join(dir, "ok.txt")
	if err := writeOutput(ok, func(w io.Writer) error {
		_, err := io.WriteString(w, "curve")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	if b, err := os.ReadFile(ok); err != nil || string(b) != "curve" {
		t.Errorf("read %q, %v", b, err)
	}

	failed := filepath.Join(dir, "failed.txt")
	if err := writeOutput(failed, func(io.Writer) error { return errors.New("encode failed") }); err == nil {
		t.Fatal("expected the write error")
	}
	if _, err := os.Stat(failed); !os.IsNotExist(err) {
		t.Error("failed write left a file behind")
	}
}
