// Package simplify merges chains of LineString segments that share an
// endpoint into longer LineStrings, before they ever reach noding. Dirty
// input routinely arrives pre-split into many short, touching pieces;
// merging them first means the planar graph builds fewer, longer edges
// and dangle pruning has fewer tree fragments to chase down.
package simplify

import "github.com/rubenv/polygonize/geom"

func reverse(s []geom.Point) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Reduce merges lines whose endpoints coincide exactly. It does not snap
// or node: two endpoints merge only when Equal reports them identical, so
// the output's segments are exactly the input's segments, just grouped
// into fewer, longer LineStrings.
func Reduce(in [][]geom.Point) [][]geom.Point {
	repeat := true
	for repeat {
		repeat = false

		for i := 0; i < len(in); i++ {
			line := in[i]
			if len(line) == 0 {
				in = append(in[:i], in[i+1:]...)
				repeat = true
				break
			}

			start := line[0]
			end := line[len(line)-1]

			for j := 0; j < len(in); j++ {
				line2 := in[j]
				if len(line2) == 0 {
					continue
				}

				if i == j {
					continue
				}

				start2 := line2[0]
				end2 := line2[len(line2)-1]

				if end.Equal(start2) {
					rest := line2[1:]
					in[i] = append(in[i], rest...)
					in = append(in[:j], in[j+1:]...)
					repeat = true
					break
				}

				// Same end? Append reversed.
				if end2.Equal(end) {
					reverse(line2)
					in[i] = append(in[i], line2[1:]...)
					in = append(in[:j], in[j+1:]...)
					repeat = true
					break
				}

				// Same start? Prepend.
				if start2.Equal(start) {
					reverse(line2)
					in[i] = append(line2[0:len(line2)-1], in[i]...)
					in = append(in[:j], in[j+1:]...)
					repeat = true
					break
				}
			}

			if repeat {
				break
			}
		}
	}
	return in
}
