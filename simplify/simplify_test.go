package simplify

import (
	"reflect"
	"testing"

	"github.com/rubenv/polygonize/geom"
)

func pt(x float64) geom.Point {
	return geom.Point{X: x, Y: 0}
}

func line(xs ...float64) []geom.Point {
	out := make([]geom.Point, len(xs))
	for i, x := range xs {
		out[i] = pt(x)
	}
	return out
}

func lines(ls ...[]geom.Point) [][]geom.Point {
	return ls
}

func TestSingleCoordNOOP(t *testing.T) {
	segments := lines(line(1))
	if !reflect.DeepEqual(Reduce(segments), segments) {
		t.Fatal("Should be a NOOP")
	}
}

func TestMergesLines(t *testing.T) {
	input := lines(line(1, 2), line(2, 3))
	expected := lines(line(1, 2, 3))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestPreserveBodies(t *testing.T) {
	input := lines(line(1, 2, 3), line(3, 4, 5))
	expected := lines(line(1, 2, 3, 4, 5))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestMergeMultiple(t *testing.T) {
	input := lines(line(1, 2), line(2, 3), line(3, 4))
	expected := lines(line(1, 2, 3, 4))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestMergeOrder(t *testing.T) {
	input := lines(line(2, 3), line(3, 4), line(1, 2))
	expected := lines(line(1, 2, 3, 4))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestMergeCircular(t *testing.T) {
	input := lines(line(1, 2), line(2, 3), line(3, 1))
	expected := lines(line(1, 2, 3, 1))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestInverted(t *testing.T) {
	input := lines(line(1, 2), line(3, 2), line(3, 4))
	expected := lines(line(1, 2, 3, 4))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestInvertedBodies(t *testing.T) {
	input := lines(line(1, 2, 3), line(5, 4, 3), line(5, 6, 7))
	expected := lines(line(1, 2, 3, 4, 5, 6, 7))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestSeparate(t *testing.T) {
	input := lines(line(1, 2), line(2, 3), line(4, 5), line(5, 6))
	expected := lines(line(1, 2, 3), line(4, 5, 6))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func TestStart(t *testing.T) {
	input := lines(line(1, 2, 3), line(1, 4, 5))
	expected := lines(line(5, 4, 1, 2, 3))
	if !reflect.DeepEqual(Reduce(input), expected) {
		t.Fatal("Failed")
	}
}

func BenchmarkSimplify(b *testing.B) {
	input := lines(line(1, 2, 3), line(3, 4, 5))
	for n := 0; n < b.N; n++ {
		Reduce(input)
	}
}
