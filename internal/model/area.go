package model

import "math"

// PaddedArea returns the area a placed shape accounts for in fill statistics.
//
// Rectangles count their padded box and circles their padded disc. Triangles
// and polygons count their exact area plus a flat allowance of
// 2*padding*max(width, height). The polygon allowance over-estimates the true
// offset area; comparison figures depend on it, so keep it as is.
func PaddedArea(s Shape, padding float64) float64 {
	pad := 2 * padding
	switch g := s.geom.(type) {
	case Rectangle:
		return (g.Width + pad) * (g.Height + pad)
	case Circle:
		r := g.Radius + padding
		return math.Pi * r * r
	case Triangle:
		return math.Abs(PolygonArea(g.Vertices)) + pad*s.MaxSide()
	case Polygon:
		return math.Abs(PolygonArea(g.Vertices)) + pad*s.MaxSide()
	default:
		return 0
	}
}

// NetArea returns the unpadded area of the shape.
func NetArea(s Shape) float64 {
	switch g := s.geom.(type) {
	case Rectangle:
		return g.Width * g.Height
	case Circle:
		return math.Pi * g.Radius * g.Radius
	case Triangle:
		return math.Abs(PolygonArea(g.Vertices))
	case Polygon:
		return math.Abs(PolygonArea(g.Vertices))
	default:
		return 0
	}
}
