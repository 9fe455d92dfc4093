package polygonize

import "fmt"

// ErrorKind discriminates the structured outcomes Polygonize (and
// AddGeometry) can report, so callers can errors.As a *PolygonizeError and
// branch on Kind rather than matching error strings.
type ErrorKind int

const (
	// EmptyInput means Polygonize was called with no accumulated segments.
	EmptyInput ErrorKind = iota
	// DegenerateGraph means ring extraction found rings, but none of them
	// remained as a shell after degenerate-ring removal and classification.
	// Finding no rings at all is not an error.
	DegenerateGraph
	// InvalidInput means AddGeometry rejected malformed geometry: fewer
	// than two distinct points, or a NaN/infinite coordinate.
	InvalidInput
	// PredicateFailure means a cut-edge/ring-closure assertion tripped.
	// This should be impossible given the graph's invariants, and is
	// reported rather than silently swallowed to aid debugging.
	PredicateFailure
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case DegenerateGraph:
		return "DegenerateGraph"
	case InvalidInput:
		return "InvalidInput"
	case PredicateFailure:
		return "PredicateFailure"
	default:
		return "Unknown"
	}
}

// PolygonizeError is the single error type through which every structured
// failure of the core propagates to the façade boundary.
type PolygonizeError struct {
	Kind ErrorKind
	Msg  string
}

func (e *PolygonizeError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *PolygonizeError {
	return &PolygonizeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
