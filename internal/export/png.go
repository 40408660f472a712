package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"

	"github.com/piwi3910/ShapePack/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// PNGOptions controls layout image rendering.
type PNGOptions struct {
	// Scale is the number of pixels per sheet unit.
	Scale float64
	// ShowPadding shades the padded footprint around every shape.
	ShowPadding bool
}

// DefaultPNGOptions returns one pixel per unit with padding shown.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Scale: 1, ShowPadding: true}
}

var (
	paddingShade = color.RGBA{R: 200, G: 200, B: 200, A: 160}
	borderColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor   = color.RGBA{A: 255}
)

// RenderPNG draws result onto a new image: the sheet border, the padded
// footprints, every placed shape filled in its kind colour and labelled with
// its id.
func RenderPNG(path string, result model.PackResult, opts PNGOptions) error {
	img, err := RenderImage(result, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}

// RenderImage is RenderPNG without the file.
func RenderImage(result model.PackResult, opts PNGOptions) (*image.RGBA, error) {
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("invalid png scale %g", opts.Scale)
	}
	if err := result.Sheet.Validate(); err != nil {
		return nil, err
	}

	w := int(math.Ceil(result.Sheet.Width * opts.Scale))
	h := int(math.Ceil(result.Sheet.Height * opts.Scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	fill := func(outline model.Outline, c color.Color) {
		if len(outline) < 3 {
			return
		}
		z.Reset(w, h)
		z.MoveTo(float32(outline[0].X*opts.Scale), float32(outline[0].Y*opts.Scale))
		for _, p := range outline[1:] {
			z.LineTo(float32(p.X*opts.Scale), float32(p.Y*opts.Scale))
		}
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	if opts.ShowPadding && result.Sheet.Padding > 0 {
		for _, p := range result.Placements {
			fill(rectOutline(paddedBox(p, result.Sheet.Padding)), paddingShade)
		}
	}

	for _, p := range result.Placements {
		fill(placedOutline(p), kindColor(p.Shape.Kind()))
	}

	for _, p := range result.Placements {
		anchor := labelAnchor(placedOutline(p))
		drawLabel(img, strconv.Itoa(p.Shape.ID()), anchor.X*opts.Scale, anchor.Y*opts.Scale)
	}

	drawBorder(img, borderColor)
	return img, nil
}

func rectOutline(r model.Rect) model.Outline {
	return model.Outline{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}
}

// drawLabel writes s centred on (x, y).
func drawLabel(img draw.Image, s string, x, y float64) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot:  fixed.P(int(x)-width/2, int(y)+face.Ascent/2),
	}
	d.DrawString(s)
}

// drawBorder outlines the image bounds with a one pixel line.
func drawBorder(img *image.RGBA, c color.Color) {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		img.Set(x, b.Min.Y, c)
		img.Set(x, b.Max.Y-1, c)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.Set(b.Min.X, y, c)
		img.Set(b.Max.X-1, y, c)
	}
}
