// Package propagate implements the pipeline driver of spec §4.5/§6: walk a
// circuit (optionally reversed into Heisenberg order), apply each gate,
// merge, and truncate, against either cache shape. Circuit/Options follow
// the teacher's "plain struct, no functional options" configuration style
// (AMBIENT STACK).
package propagate

import (
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/gate"
	"github.com/pauliprop/pauliprop/pauli"
)

// Circuit is a finite ordered sequence of gates (§3.4/§6.1). Nothing beyond
// append order matters to propagation; reversal and transposition for
// Heisenberg/Schrödinger mode happen inside Propagate, not here.
type Circuit[W pauli.Word, C coeff.Rotatable[C]] []gate.Applier[W, C]

// Append adds a gate to the end of the circuit.
func (c *Circuit[W, C]) Append(g gate.Applier[W, C]) {
	*c = append(*c, g)
}

// LayerKind selects which bricklayer layer AppendLayer builds.
type LayerKind int

const (
	// RXLayer appends one frozen RX(angle) rotation per qubit.
	RXLayer LayerKind = iota
	// ZZLayer appends one frozen exp(-i*angle/2*Z Z) rotation across each
	// neighboring qubit pair at a given parity offset.
	ZZLayer
)

// AppendLayer appends a single bricklayer/TFIM layer (Supplemented Feature
// 2): the builder helpers themselves are out of scope per §1, but a
// Trotterized transverse-field-Ising circuit (spec §8 scenario 5) needs
// something to construct it from. Each gate's angle is baked in via
// gate.FrozenGate, so a many-layer circuit built this way consumes no
// entries from the driver's parameter sequence. parityOffset 0 pairs
// (1,2),(3,4),...; parityOffset 1 pairs (2,3),(4,5),... — the standard
// even/odd bricklayer alternation.
func (c *Circuit[W, C]) AppendLayer(kind LayerKind, n int, angle float64, parityOffset int) {
	switch kind {
	case RXLayer:
		for q := 1; q <= n; q++ {
			rot := &gate.PauliRotation[W, C]{Symbols: []pauli.Symbol{pauli.X}, QInds: []int{q}}
			c.Append(&gate.FrozenGate[W, C]{Inner: rot, Parameter: angle})
		}
	case ZZLayer:
		for q := 1 + parityOffset; q+1 <= n; q += 2 {
			rot := &gate.PauliRotation[W, C]{Symbols: []pauli.Symbol{pauli.Z, pauli.Z}, QInds: []int{q, q + 1}}
			c.Append(&gate.FrozenGate[W, C]{Inner: rot, Parameter: angle})
		}
	}
}
