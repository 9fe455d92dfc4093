// Package tiling partitions a large input's bounding box into a grid of
// buffered tiles and polygonizes each tile independently, in parallel,
// recombining the per-tile output so each polygon is attributed to exactly
// one tile.
package tiling

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rubenv/polygonize"
	"github.com/rubenv/polygonize/geom"
)

// BBox is an axis-aligned bounding box over the whole input.
type BBox = geom.BBox

// TiledPolygonizer partitions accumulated geometry into tiles and
// polygonizes each tile independently with NodeInput forced on, since tile
// boundaries routinely cut through geometry that was never noded against
// its neighbors.
type TiledPolygonizer struct {
	BBox     BBox
	TileSize float64
	// Buffer expands each tile's query box on every side so geometry
	// crossing a tile boundary is captured by both neighboring tiles;
	// only the centroid-ownership rule (see polygonize) decides which
	// tile keeps the resulting polygon.
	Buffer float64
	// SnapGridSize is forwarded to each tile's Polygonizer.
	SnapGridSize float64
	// MaxIterations is forwarded to each tile's Polygonizer.
	MaxIterations int

	geometries []boundedGeometry
}

type boundedGeometry struct {
	geom polygonize.Geometry
	bbox geom.BBox
}

// AddGeometry queues a geometry for tiling. Its bounding box is computed
// once up front so every tile's filtering pass is a cheap box test.
func (t *TiledPolygonizer) AddGeometry(g polygonize.Geometry, bbox BBox) {
	t.geometries = append(t.geometries, boundedGeometry{geom: g, bbox: bbox})
}

// Diagnostic mirrors polygonize.Diagnostic for events recorded by the tiled
// orchestrator itself (as opposed to a per-tile Polygonizer's own
// diagnostics, which are discarded along with that tile's Polygonizer).
type Diagnostic struct {
	Msg string
}

type tile struct {
	row, col  int
	unbuffered BBox
	buffered   BBox
	// lastCol/lastRow mark the tile whose unbuffered bounds were clipped to
	// the global bbox's right/top edge, so its ownership test must treat
	// that edge as closed instead of half-open.
	lastCol, lastRow bool
}

// Polygonize runs the tiled pipeline. ctx is checked between tiles, not
// mid-algorithm: there are no suspension points inside a single tile's
// polygonization.
func (t *TiledPolygonizer) Polygonize(ctx context.Context) ([]polygonize.Polygon, []Diagnostic, error) {
	tiles := t.buildTiles()

	results := make([][]polygonize.Polygon, len(tiles))
	diagResults := make([][]Diagnostic, len(tiles))

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, runtime.NumCPU())

	for i, tl := range tiles {
		i, tl := i, tl
		if err := gctx.Err(); err != nil {
			break
		}

		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			polys, tileDiags, err := t.processTile(tl)
			if err != nil {
				return err
			}
			results[i] = polys
			diagResults[i] = tileDiags
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var out []polygonize.Polygon
	var diags []Diagnostic
	for i, polys := range results {
		out = append(out, polys...)
		diags = append(diags, diagResults[i]...)
	}
	return out, diags, nil
}

func (t *TiledPolygonizer) buildTiles() []tile {
	minX, minY, maxX, maxY := t.BBox.MinX, t.BBox.MinY, t.BBox.MaxX, t.BBox.MaxY
	width := maxX - minX
	height := maxY - minY

	cols := int(math.Ceil(width / t.TileSize))
	rows := int(math.Ceil(height / t.TileSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	tiles := make([]tile, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x0 := minX + float64(c)*t.TileSize
			y0 := minY + float64(r)*t.TileSize
			x1 := math.Min(x0+t.TileSize, maxX)
			y1 := math.Min(y0+t.TileSize, maxY)

			unbuffered := BBox{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
			buffered := BBox{
				MinX: x0 - t.Buffer, MinY: y0 - t.Buffer,
				MaxX: x1 + t.Buffer, MaxY: y1 + t.Buffer,
			}
			tiles = append(tiles, tile{
				row: r, col: c,
				unbuffered: unbuffered, buffered: buffered,
				lastCol: c == cols-1, lastRow: r == rows-1,
			})
		}
	}
	return tiles
}

func (t *TiledPolygonizer) processTile(tl tile) ([]polygonize.Polygon, []Diagnostic, error) {
	local := polygonize.New()
	local.NodeInput = true
	if t.SnapGridSize > 0 {
		local.SnapGridSize = t.SnapGridSize
	}
	if t.MaxIterations > 0 {
		local.MaxIterations = t.MaxIterations
	}

	relevant := 0
	for _, bg := range t.geometries {
		if boxesIntersect(bg.bbox, tl.buffered) {
			if err := local.AddGeometry(bg.geom); err != nil {
				return nil, nil, err
			}
			relevant++
		}
	}
	if relevant == 0 {
		return nil, nil, nil
	}

	polys, err := local.Polygonize()
	if err != nil {
		if pe, ok := asPolygonizeError(err); ok && pe == polygonize.EmptyInput {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var owned []polygonize.Polygon
	var diags []Diagnostic
	for _, poly := range polys {
		pts := append([]geom.Point(nil), poly.Shell...)
		c := geom.Centroid(pts)
		area := math.Abs(geom.SignedArea2(pts)) / 2
		if area < 1e-6 {
			continue
		}
		maxX := tl.unbuffered.MaxX
		maxY := tl.unbuffered.MaxY
		inX := c.X >= tl.unbuffered.MinX && (c.X < maxX || (tl.lastCol && c.X == maxX))
		inY := c.Y >= tl.unbuffered.MinY && (c.Y < maxY || (tl.lastRow && c.Y == maxY))
		if inX && inY {
			owned = append(owned, poly)
			continue
		}
		if c.X < t.BBox.MinX || c.X > t.BBox.MaxX || c.Y < t.BBox.MinY || c.Y > t.BBox.MaxY {
			diags = append(diags, Diagnostic{Msg: "polygon centroid fell outside every tile; dropped"})
		}
	}
	return owned, diags, nil
}

func boxesIntersect(a, b geom.BBox) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX && a.MinY <= b.MaxY && b.MinY <= a.MaxY
}

func asPolygonizeError(err error) (polygonize.ErrorKind, bool) {
	if pe, ok := err.(*polygonize.PolygonizeError); ok {
		return pe.Kind, true
	}
	return 0, false
}
