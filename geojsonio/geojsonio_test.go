package geojsonio

import (
	"bytes"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

func TestPolygonizeUnitSquareRoundTrip(t *testing.T) {
	in := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {
				"type": "LineString",
				"coordinates": [[0,0],[10,0],[10,10],[0,10],[0,0]]
			}}
		]
	}`

	var out bytes.Buffer
	err := Polygonize(strings.NewReader(in), &out, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(out.Bytes())
	if err != nil {
		t.Fatalf("output is not valid GeoJSON: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 polygon feature, got %d", len(fc.Features))
	}
	if !fc.Features[0].Geometry.IsPolygon() {
		t.Fatalf("expected a Polygon geometry, got %s", fc.Features[0].Geometry.Type)
	}
}

func TestPolygonizeRejectsUnsupportedGeometry(t *testing.T) {
	in := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {
				"type": "Point",
				"coordinates": [0,0]
			}}
		]
	}`

	var out bytes.Buffer
	err := Polygonize(strings.NewReader(in), &out, Options{})
	if err == nil {
		t.Fatal("expected an error for an unsupported geometry type")
	}
}

func TestPolygonizeEmptyCollectionReturnsError(t *testing.T) {
	in := `{"type": "FeatureCollection", "features": []}`

	var out bytes.Buffer
	err := Polygonize(strings.NewReader(in), &out, Options{})
	if err == nil {
		t.Fatal("expected an error for an empty input collection")
	}
}
