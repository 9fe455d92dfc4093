// Package geojsonio bridges the polygonizer to GeoJSON: it decodes a
// FeatureCollection of LineStrings/MultiLineStrings into AddGeometry calls
// and encodes extracted polygons back into a FeatureCollection of Polygon
// features, built on the teacher's go.geojson dependency.
package geojsonio

import (
	"encoding/json"
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"github.com/rubenv/polygonize"
)

// Options configures a Polygonize call over GeoJSON input.
type Options struct {
	NodeInput         bool
	SnapGridSize      float64
	MaxIterations     int
	MinShellsForIndex int
}

// Polygonize reads a GeoJSON FeatureCollection from r whose features'
// geometries are LineString or MultiLineString, runs it through a
// polygonize.Polygonizer, and writes a FeatureCollection of Polygon
// features to w, one feature per extracted polygon, in extraction order.
// Feature properties are not preserved.
func Polygonize(r io.Reader, w io.Writer, opts Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading GeoJSON input: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("parsing GeoJSON input: %w", err)
	}

	p := polygonize.New()
	p.NodeInput = opts.NodeInput
	if opts.SnapGridSize > 0 {
		p.SnapGridSize = opts.SnapGridSize
	}
	if opts.MaxIterations > 0 {
		p.MaxIterations = opts.MaxIterations
	}
	if opts.MinShellsForIndex > 0 {
		p.MinShellsForIndex = opts.MinShellsForIndex
	}

	for _, feat := range fc.Features {
		g, err := decodeGeometry(feat.Geometry)
		if err != nil {
			return fmt.Errorf("decoding feature geometry: %w", err)
		}
		if g == nil {
			continue
		}
		if err := p.AddGeometry(g); err != nil {
			return fmt.Errorf("adding feature geometry: %w", err)
		}
	}

	polys, err := p.Polygonize()
	if err != nil {
		return err
	}

	out := geojson.NewFeatureCollection()
	for _, poly := range polys {
		out.AddFeature(geojson.NewFeature(encodePolygon(poly)))
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing GeoJSON output: %w", err)
	}
	return nil
}

func decodeGeometry(g *geojson.Geometry) (polygonize.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	switch {
	case g.IsLineString():
		return polygonize.LineString(toPoints(g.LineString)), nil
	case g.IsMultiLineString():
		mls := make(polygonize.MultiLineString, len(g.MultiLineString))
		for i, ls := range g.MultiLineString {
			mls[i] = polygonize.LineString(toPoints(ls))
		}
		return mls, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q (expected LineString or MultiLineString)", g.Type)
	}
}

func toPoints(coords [][]float64) []polygonize.Point {
	pts := make([]polygonize.Point, len(coords))
	for i, c := range coords {
		pts[i] = polygonize.Point{X: c[0], Y: c[1]}
	}
	return pts
}

func encodePolygon(p polygonize.Polygon) *geojson.Geometry {
	rings := make([][][]float64, 0, 1+len(p.Holes))
	rings = append(rings, ringCoords(p.Shell))
	for _, h := range p.Holes {
		rings = append(rings, ringCoords(h))
	}
	return geojson.NewPolygonGeometry(rings)
}

// ringCoords closes the ring (GeoJSON requires the first and last
// positions to coincide) and converts it to the [][]float64 coordinate
// shape go.geojson expects.
func ringCoords(r polygonize.Ring) [][]float64 {
	out := make([][]float64, 0, len(r)+1)
	for _, pt := range r {
		out = append(out, []float64{pt.X, pt.Y})
	}
	if len(r) > 0 && (r[0].X != r[len(r)-1].X || r[0].Y != r[len(r)-1].Y) {
		out = append(out, []float64{r[0].X, r[0].Y})
	}
	return out
}
