// Package perr defines the error kinds surfaced at the propagation driver
// boundary. These are plain sentinel-style errors, not exception types:
// callers discriminate with errors.Is against the exported Err* values, and
// wrap with fmt.Errorf("...: %w", perr.ErrShapeMismatch) for context.
package perr

import "errors"

var (
	// ErrShapeMismatch: sum and gate disagree on qubit count, or the
	// parameter count disagrees with the number of parametrized gates.
	ErrShapeMismatch = errors.New("pauliprop: shape mismatch")

	// ErrOutOfRangePauli: a site index fell outside [1, N], or a two-bit
	// Pauli value fell outside {0,1,2,3}.
	ErrOutOfRangePauli = errors.New("pauliprop: pauli site or value out of range")

	// ErrUnsupportedGate: a user-defined gate has no Apply implementation
	// for the coefficient mode in use.
	ErrUnsupportedGate = errors.New("pauliprop: unsupported gate for this coefficient mode")

	// ErrIncompatibleCoefficient: a threshold that requires path-properties
	// (MaxFreq, MaxSins) was requested against a plain numeric coefficient.
	ErrIncompatibleCoefficient = errors.New("pauliprop: threshold requires path-properties coefficients")

	// ErrCapacityExhausted: the dense cache failed to grow its backing
	// arrays (surface of an allocator failure).
	ErrCapacityExhausted = errors.New("pauliprop: dense cache capacity exhausted")
)

// Wrap attaches op context to one of the sentinel errors above, preserving
// errors.Is/errors.As against it.
func Wrap(op string, sentinel error, detail string) error {
	if detail == "" {
		return &wrapped{op: op, sentinel: sentinel}
	}
	return &wrapped{op: op, sentinel: sentinel, detail: detail}
}

type wrapped struct {
	op       string
	sentinel error
	detail   string
}

func (w *wrapped) Error() string {
	if w.detail == "" {
		return w.op + ": " + w.sentinel.Error()
	}
	return w.op + ": " + w.sentinel.Error() + ": " + w.detail
}

func (w *wrapped) Unwrap() error { return w.sentinel }
