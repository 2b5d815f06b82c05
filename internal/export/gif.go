package export

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"io"

	"golang.org/x/image/draw"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/sim"
)

// GIFRecorder collects paletted frames for an animated GIF.
type GIFRecorder struct {
	anim  gif.GIF
	delay int
}

// NewGIFRecorder returns a recorder whose frames are shown for delay
// hundredths of a second each.
func NewGIFRecorder(delay int) *GIFRecorder {
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{delay: delay}
}

// Add quantizes img to the Plan 9 palette and appends it.
func (g *GIFRecorder) Add(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.Draw(p, p.Bounds(), img, b.Min, draw.Src)
	g.anim.Image = append(g.anim.Image, p)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

func (g *GIFRecorder) Len() int { return len(g.anim.Image) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	return gif.EncodeAll(w, &g.anim)
}

// RecordOptions controls Record.
type RecordOptions struct {
	Frames int
	// Every keeps one of every Every simulated frames.
	Every int
	FPS   int
}

// Record drives s for opts.Frames frames on a raster of the scene's size,
// feeding the pointer from path, and captures every opts.Every-th frame.
func Record(ctx context.Context, s *sim.Simulator, path sim.PointerPath, width, height int, opts RecordOptions) (*GIFRecorder, error) {
	if opts.Frames <= 0 || opts.FPS <= 0 {
		return nil, fmt.Errorf("frames %d at %d fps: %w", opts.Frames, opts.FPS, dynamo.ErrParameterBounds)
	}
	if opts.Every < 1 {
		opts.Every = 1
	}

	scene := s.Scene()
	if err := scene.Resize(float64(width), float64(height)); err != nil {
		return nil, err
	}

	raster := NewRaster(width, height, s.Style().Background)
	rec := NewGIFRecorder(100 * opts.Every / opts.FPS)

	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		if path != nil {
			if p, ok := path.At(i, float64(width), float64(height)); ok {
				scene.PointerMove(p.X, p.Y)
			}
		}
		s.Frame(raster)
		if !scene.Valid() {
			return rec, &dynamo.SimulationError{Frame: i, Wrapped: dynamo.ErrInvalidState}
		}
		if i%opts.Every == 0 {
			rec.Add(raster.Image())
		}
	}

	dynamo.Logger().Debug("recorded gif", "frames", rec.Len())
	return rec, nil
}
