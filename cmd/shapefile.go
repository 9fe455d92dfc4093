package cmd

import (
	"fmt"

	shp "github.com/jonas-p/go-shp"

	"github.com/rubenv/polygonize"
	"github.com/rubenv/polygonize/geom"
)

// readShapefileSegments opens a polygon shapefile and flattens every ring
// of every shape into a LineString, the same way osmtopo's Land/Water
// importers walk a shp.Polygon's Parts. Shapefile polygons are exactly
// the kind of pre-built-but-possibly-dirty ring data this tool exists to
// re-derive: feeding their boundaries back in as unstructured segments
// (rather than trusting the shapefile's own ring/hole pairing) exercises
// noding and hole assignment on real-world input.
func readShapefileSegments(path string) ([]polygonize.Geometry, []geom.BBox, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer shape.Close()

	var geoms []polygonize.Geometry
	var boxes []geom.BBox

	for shape.Next() {
		_, p := shape.Shape()
		poly, ok := p.(*shp.Polygon)
		if !ok {
			return nil, nil, fmt.Errorf("non-polygon shape found: %T", p)
		}

		for i, first := range poly.Parts {
			last := uint32(len(poly.Points))
			if i < len(poly.Parts)-1 {
				last = uint32(poly.Parts[i+1])
			}
			ring := poly.Points[first:last]
			if len(ring) < 2 {
				continue
			}

			ls := make(polygonize.LineString, len(ring))
			for j, pt := range ring {
				ls[j] = geom.Point{X: pt.X, Y: pt.Y}
			}
			geoms = append(geoms, ls)
			boxes = append(boxes, geom.BBoxOf([]geom.Point(ls)))
		}
	}

	return geoms, boxes, nil
}
