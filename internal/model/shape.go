package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidShape is returned when a shape's geometry fails validation.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrUnsupportedKind is returned for shape type names the packer does not know.
	ErrUnsupportedKind = errors.New("unsupported shape type")
)

// Kind identifies the variant of a shape.
type Kind int

const (
	KindRectangle Kind = iota
	KindCircle
	KindTriangle
	KindPolygon
)

// Kinds lists every supported kind in declaration order.
var Kinds = []Kind{KindRectangle, KindCircle, KindTriangle, KindPolygon}

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindTriangle:
		return "triangle"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a case-insensitive type name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle":
		return KindRectangle, nil
	case "circle":
		return KindCircle, nil
	case "triangle":
		return KindTriangle, nil
	case "polygon":
		return KindPolygon, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// Geometry is the payload of a shape. The set of implementations is closed:
// Rectangle, Circle, Triangle and Polygon.
type Geometry interface {
	Kind() Kind
	sealed()
}

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is a circle given by its radius.
type Circle struct {
	Radius float64 `json:"radius"`
}

// Triangle is a three-or-more vertex outline tagged as a triangle.
// Vertices are normalized so the bounding box starts at the origin.
type Triangle struct {
	Vertices Outline `json:"vertices"`
}

// Polygon is a simple polygon. Vertices are normalized so the bounding box
// starts at the origin.
type Polygon struct {
	Vertices Outline `json:"vertices"`
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Circle) Kind() Kind    { return KindCircle }
func (Triangle) Kind() Kind  { return KindTriangle }
func (Polygon) Kind() Kind   { return KindPolygon }

func (Rectangle) sealed() {}
func (Circle) sealed()    {}
func (Triangle) sealed()  {}
func (Polygon) sealed()   {}

// Shape is an immutable shape descriptor: an id, its geometry and the
// bounding box derived from it at construction.
type Shape struct {
	id     int
	geom   Geometry
	width  float64
	height float64
}

// NewRectangle creates a rectangle shape.
func NewRectangle(id int, width, height float64) (Shape, error) {
	if !isFinite(width) || !isFinite(height) || width <= 0 || height <= 0 {
		return Shape{}, fmt.Errorf("%w: rectangle %d: width and height must be positive, got %gx%g",
			ErrInvalidShape, id, width, height)
	}
	return Shape{id: id, geom: Rectangle{Width: width, Height: height}, width: width, height: height}, nil
}

// NewCircle creates a circle shape.
func NewCircle(id int, radius float64) (Shape, error) {
	if !isFinite(radius) || radius <= 0 {
		return Shape{}, fmt.Errorf("%w: circle %d: radius must be positive, got %g", ErrInvalidShape, id, radius)
	}
	return Shape{id: id, geom: Circle{Radius: radius}, width: 2 * radius, height: 2 * radius}, nil
}

// NewTriangle creates a triangle shape from its vertices.
func NewTriangle(id int, vertices Outline) (Shape, error) {
	outline, w, h, err := normalizeVertices(KindTriangle, id, vertices)
	if err != nil {
		return Shape{}, err
	}
	return Shape{id: id, geom: Triangle{Vertices: outline}, width: w, height: h}, nil
}

// NewPolygon creates a polygon shape from its vertices.
func NewPolygon(id int, vertices Outline) (Shape, error) {
	outline, w, h, err := normalizeVertices(KindPolygon, id, vertices)
	if err != nil {
		return Shape{}, err
	}
	return Shape{id: id, geom: Polygon{Vertices: outline}, width: w, height: h}, nil
}

// NewShape builds a shape from a geometry value, validating and normalizing it.
func NewShape(id int, g Geometry) (Shape, error) {
	switch v := g.(type) {
	case Rectangle:
		return NewRectangle(id, v.Width, v.Height)
	case Circle:
		return NewCircle(id, v.Radius)
	case Triangle:
		return NewTriangle(id, v.Vertices)
	case Polygon:
		return NewPolygon(id, v.Vertices)
	default:
		return Shape{}, fmt.Errorf("%w: %T", ErrUnsupportedKind, g)
	}
}

func normalizeVertices(kind Kind, id int, vertices Outline) (Outline, float64, float64, error) {
	if len(vertices) < 3 {
		return nil, 0, 0, fmt.Errorf("%w: %s %d: need at least 3 vertices, got %d",
			ErrInvalidShape, kind, id, len(vertices))
	}
	for _, p := range vertices {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return nil, 0, 0, fmt.Errorf("%w: %s %d: non-finite vertex (%g, %g)", ErrInvalidShape, kind, id, p.X, p.Y)
		}
	}
	normalized := vertices.Normalize()
	_, max := normalized.BoundingBox()
	if max.X <= 0 || max.Y <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: %s %d: degenerate bounding box %gx%g", ErrInvalidShape, kind, id, max.X, max.Y)
	}
	return normalized, max.X, max.Y, nil
}

// ID returns the caller-assigned identifier.
func (s Shape) ID() int { return s.id }

// Kind returns the shape variant.
func (s Shape) Kind() Kind {
	if s.geom == nil {
		return Kind(-1)
	}
	return s.geom.Kind()
}

// Geometry returns the geometry payload. Vertex slices are copied so the
// shape stays immutable.
func (s Shape) Geometry() Geometry {
	switch g := s.geom.(type) {
	case Triangle:
		return Triangle{Vertices: append(Outline(nil), g.Vertices...)}
	case Polygon:
		return Polygon{Vertices: append(Outline(nil), g.Vertices...)}
	default:
		return g
	}
}

// Width returns the bounding box width.
func (s Shape) Width() float64 { return s.width }

// Height returns the bounding box height.
func (s Shape) Height() float64 { return s.height }

// MaxSide returns max(width, height), the sort key of the greedy and
// maximal-rectangles packers.
func (s Shape) MaxSide() float64 {
	if s.width > s.height {
		return s.width
	}
	return s.height
}

// CanRotate reports whether a 90 degree rotation gives a different footprint.
// Only rectangles rotate.
func (s Shape) CanRotate() bool {
	_, ok := s.geom.(Rectangle)
	return ok && s.width != s.height
}

// Vertices returns a copy of the normalized vertices for triangles and
// polygons, and nil for other kinds.
func (s Shape) Vertices() Outline {
	switch g := s.geom.(type) {
	case Triangle:
		return append(Outline(nil), g.Vertices...)
	case Polygon:
		return append(Outline(nil), g.Vertices...)
	default:
		return nil
	}
}

// Radius returns the circle radius, or 0 for other kinds.
func (s Shape) Radius() float64 {
	if c, ok := s.geom.(Circle); ok {
		return c.Radius
	}
	return 0
}

func (s Shape) String() string {
	return fmt.Sprintf("%s#%d(%gx%g)", s.Kind(), s.id, s.width, s.height)
}
