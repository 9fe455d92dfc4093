package polygonize

import "github.com/rubenv/polygonize/geom"

// Point is a 2D coordinate.
type Point = geom.Point

// Geometry is implemented by every geometry type AddGeometry accepts:
// LineString, MultiLineString, Polygon, MultiPolygon, and
// GeometryCollection. It carries no behavior beyond marking membership in
// this closed set; extract_lines-equivalent flattening lives in
// polygonizer.go, dispatched with a plain type switch rather than virtual
// methods.
type Geometry interface {
	isGeometry()
}

// LineString is an open or closed sequence of points.
type LineString []Point

func (LineString) isGeometry() {}

// MultiLineString is a collection of LineStrings.
type MultiLineString []LineString

func (MultiLineString) isGeometry() {}

// Ring is a closed sequence of points describing one boundary of a polygon;
// the first point need not be repeated as the last.
type Ring []Point

// Polygon is a shell ring plus zero or more hole rings, all of which lie
// within the shell. This type is used both for polygonal input (decomposed
// back into its constituent ring line segments by AddGeometry) and for
// Polygonize's output.
type Polygon struct {
	Shell Ring
	Holes []Ring
}

func (Polygon) isGeometry() {}

// MultiPolygon is a collection of Polygons.
type MultiPolygon []Polygon

func (MultiPolygon) isGeometry() {}

// GeometryCollection is a heterogeneous collection of Geometry values.
type GeometryCollection []Geometry

func (GeometryCollection) isGeometry() {}
