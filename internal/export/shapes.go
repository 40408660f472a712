package export

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/rclancey/earcut"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 64

// kindHues assigns each shape kind a hue in degrees.
var kindHues = map[model.Kind]float64{
	model.KindRectangle: 122,
	model.KindCircle:    207,
	model.KindTriangle:  36,
	model.KindPolygon:   291,
}

// kindColor returns the fill colour used for shapes of kind k.
func kindColor(k model.Kind) color.RGBA {
	hue, ok := kindHues[k]
	if !ok {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	r, g, b := colorful.Hsv(hue, 0.55, 0.85).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// placedOutline returns the outline of p in sheet coordinates. Circles are
// approximated by a regular polygon.
func placedOutline(p model.Placement) model.Outline {
	s := p.Shape
	switch s.Kind() {
	case model.KindCircle:
		r := s.Radius()
		cx, cy := p.X+r, p.Y+r
		outline := make(model.Outline, circleSegments)
		for i := range outline {
			angle := 2 * math.Pi * float64(i) / circleSegments
			outline[i] = model.Point2D{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
		}
		return outline
	case model.KindTriangle, model.KindPolygon:
		return s.Vertices().Translate(p.X, p.Y)
	default:
		w, h := p.PlacedWidth(), p.PlacedHeight()
		return model.Outline{
			{X: p.X, Y: p.Y},
			{X: p.X + w, Y: p.Y},
			{X: p.X + w, Y: p.Y + h},
			{X: p.X, Y: p.Y + h},
		}
	}
}

// triangulate splits an outline into triangles with earcut.
func triangulate(outline model.Outline) ([][3]model.Point2D, error) {
	coords := make([]float64, len(outline)*2)
	for i, p := range outline {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, err
	}

	triangles := make([][3]model.Point2D, len(indices)/3)
	for t := range triangles {
		for k := 0; k < 3; k++ {
			v := indices[t*3+k]
			triangles[t][k] = model.Point2D{X: coords[v*2], Y: coords[v*2+1]}
		}
	}
	return triangles, nil
}

// labelAnchor returns a point inside the outline for drawing the shape id.
// Convex outlines use their bounding box centre; concave ones use the
// centroid of the largest triangle of their triangulation.
func labelAnchor(outline model.Outline) model.Point2D {
	min, max := outline.BoundingBox()
	center := model.Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}
	if isConvex(outline) {
		return center
	}

	triangles, err := triangulate(outline)
	if err != nil || len(triangles) == 0 {
		return center
	}

	best, bestArea := 0, -1.0
	for i, tri := range triangles {
		a := math.Abs(model.PolygonArea(model.Outline(tri[:])))
		if a > bestArea {
			best, bestArea = i, a
		}
	}
	tri := triangles[best]
	return model.Point2D{
		X: (tri[0].X + tri[1].X + tri[2].X) / 3,
		Y: (tri[0].Y + tri[1].Y + tri[2].Y) / 3,
	}
}

// isConvex reports whether every turn of the outline has the same direction.
func isConvex(o model.Outline) bool {
	n := len(o)
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := o[i], o[(i+1)%n], o[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 1e-9:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < -1e-9:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

// paddedBox returns the footprint of p grown by padding on every side.
func paddedBox(p model.Placement, padding float64) model.Rect {
	b := p.Bounds()
	return model.Rect{X: b.X - padding, Y: b.Y - padding, W: b.W + 2*padding, H: b.H + 2*padding}
}
