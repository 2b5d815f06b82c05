package export

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/render"
)

// circleSegments is the polygon resolution used for filled circles.
const circleSegments = 32

// Raster is a render.Surface backed by an *image.RGBA. Strokes are drawn as
// one quad per segment and circles as polygons, both anti-aliased by the
// vector rasterizer.
type Raster struct {
	render.Path
	img        *image.RGBA
	z          *vector.Rasterizer
	background color.RGBA
}

func NewRaster(width, height int, background color.RGBA) *Raster {
	r := &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		z:          vector.NewRasterizer(width, height),
		background: background,
	}
	r.Clear()
	return r
}

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
	r.BeginPath()
}

func (r *Raster) Stroke(c color.RGBA, width float64) {
	hw := width / 2
	r.reset()
	drawn := false
	r.Segments(func(a, b dynamo.Vec2) {
		d := b.Sub(a)
		if d.Len() == 0 {
			return
		}
		n := dynamo.V(-d.Y, d.X).Normalize().Scale(hw)
		r.moveTo(a.Add(n))
		r.lineTo(b.Add(n))
		r.lineTo(b.Sub(n))
		r.lineTo(a.Sub(n))
		r.z.ClosePath()
		drawn = true
	})
	if drawn {
		r.fill(c)
	}
}

func (r *Raster) FillCircle(center dynamo.Vec2, radius float64, c color.RGBA) {
	if radius <= 0 {
		return
	}
	r.reset()
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		p := center.Add(dynamo.V(math.Cos(a), math.Sin(a)).Scale(radius))
		if i == 0 {
			r.moveTo(p)
		} else {
			r.lineTo(p)
		}
	}
	r.z.ClosePath()
	r.fill(c)
}

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

func captionFace() (font.Face, error) {
	faceOnce.Do(func() {
		fnt, err := opentype.Parse(goregular.TTF)
		if err != nil {
			faceErr = err
			return
		}
		face, faceErr = opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    14,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return face, faceErr
}

// Caption draws a text label in the top-left corner.
func (r *Raster) Caption(text string, c color.RGBA) error {
	f, err := captionFace()
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: f,
		Dot:  fixed.P(8, 8+f.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// Scaled returns a copy of the image resampled to width x height.
func (r *Raster) Scaled(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), r.img, r.img.Bounds(), draw.Src, nil)
	return dst
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) reset() {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
}

func (r *Raster) moveTo(p dynamo.Vec2) { r.z.MoveTo(float32(p.X), float32(p.Y)) }
func (r *Raster) lineTo(p dynamo.Vec2) { r.z.LineTo(float32(p.X), float32(p.Y)) }

func (r *Raster) fill(c color.RGBA) {
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}
