package rtree

import "testing"

func TestRangeSearchFindsOverlapping(t *testing.T) {
	var tr RTree
	boxes := []Box{
		NewBox(0, 0, 1, 1),
		NewBox(5, 5, 6, 6),
		NewBox(10, 10, 11, 11),
		NewBox(0.5, 0.5, 2, 2),
	}
	for i, b := range boxes {
		tr.Insert(b, i)
	}

	var got []int
	err := tr.RangeSearch(NewBox(-1, -1, 1.2, 1.2), func(id int) error {
		got = append(got, id)
		return nil
	})
	if err != nil {
		t.Fatalf("RangeSearch returned error: %v", err)
	}

	want := map[int]bool{0: true, 3: true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want records %v", got, want)
	}
	for _, id := range got {
		if !want[id] {
			t.Fatalf("unexpected record %d in %v", id, got)
		}
	}
}

func TestRangeSearchStopsEarly(t *testing.T) {
	var tr RTree
	for i := 0; i < 50; i++ {
		f := float64(i)
		tr.Insert(NewBox(f, f, f+0.5, f+0.5), i)
	}

	count := 0
	err := tr.RangeSearch(NewBox(0, 0, 49, 49), func(id int) error {
		count++
		return Stop
	})
	if err != nil {
		t.Fatalf("RangeSearch returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected search to stop after first match, got %d", count)
	}
}

func TestRangeSearchEmptyTree(t *testing.T) {
	var tr RTree
	err := tr.RangeSearch(NewBox(0, 0, 1, 1), func(id int) error {
		t.Fatalf("callback should not be invoked on empty tree")
		return nil
	})
	if err != nil {
		t.Fatalf("RangeSearch on empty tree returned error: %v", err)
	}
}
