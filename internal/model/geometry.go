package model

import "math"

// Point2D represents a 2D coordinate in sheet units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = o[0]
	max = o[0]
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Normalize translates the outline so its bounding box starts at (0, 0).
func (o Outline) Normalize() Outline {
	if len(o) == 0 {
		return Outline{}
	}
	min, _ := o.BoundingBox()
	return o.Translate(-min.X, -min.Y)
}

// PolygonArea returns the signed shoelace area of the vertex list. Callers take
// the absolute value; the sign only reflects winding order.
func PolygonArea(vertices Outline) float64 {
	n := len(vertices)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
	}
	return area / 2
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// PaddedOverlap reports whether two rectangles come closer than padding to
// each other. Rectangles exactly padding apart do not overlap.
func PaddedOverlap(a, b Rect, padding float64) bool {
	return a.X+a.W+padding > b.X && b.X+b.W+padding > a.X &&
		a.Y+a.H+padding > b.Y && b.Y+b.H+padding > a.Y
}

// InsideSheet reports whether r keeps at least padding clearance from every
// edge of a width x height sheet.
func InsideSheet(r Rect, width, height, padding float64) bool {
	return r.X >= padding && r.Y >= padding &&
		r.X+r.W+padding <= width && r.Y+r.H+padding <= height
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
