package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/gate"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/propagate"
	"github.com/pauliprop/pauliprop/sum"
)

// word is the Pauli-string representation paulictl runs against: wide
// enough for the 32-qubit bricklayer scenario the spec's testable
// properties exercise, and real-valued coefficients, since a
// Heisenberg-evolved Hermitian observable's coefficients stay real
// (coeff.Numeric's own doc comment).
type word = uint64
type scalar = coeff.Numeric

// gateSpec is one entry of a JSON circuit description (Supplemented
// Feature 3): the on-disk interchange format paulictl reads, not a core
// library contract.
type gateSpec struct {
	Kind     string  `json:"kind"`
	Symbol   string  `json:"symbol,omitempty"`
	Symbols  string  `json:"symbols,omitempty"`
	Qubits   []int   `json:"qubits,omitempty"`
	Qubit    int     `json:"qubit,omitempty"`
	Strength float64 `json:"strength,omitempty"`
	Gamma    float64 `json:"gamma,omitempty"`
	NoiseKind string `json:"noise_kind,omitempty"`
	Frozen   bool    `json:"frozen,omitempty"`
	Angle    float64 `json:"angle,omitempty"`
	N        int     `json:"n,omitempty"`
	Parity   int     `json:"parity,omitempty"`
}

type circuitFile struct {
	NQubits int        `json:"n_qubits"`
	Seed    seedSpec   `json:"seed"`
	Gates   []gateSpec `json:"gates"`
	Params  []float64  `json:"params"`
}

type seedSpec struct {
	String string  `json:"string"`
	Coeff  float64 `json:"coeff"`
}

func parseSymbols(s string) ([]pauli.Symbol, error) {
	symbols := make([]pauli.Symbol, len(s))
	for i := 0; i < len(s); i++ {
		sym, err := pauli.ParseSymbol(s[i])
		if err != nil {
			return nil, err
		}
		symbols[i] = sym
	}
	return symbols, nil
}

func parseNoiseKind(s string) (gate.NoiseKind, error) {
	switch s {
	case "", "dephasing":
		return gate.Dephasing, nil
	case "bitflip":
		return gate.BitFlip, nil
	case "depolarizing":
		return gate.Depolarizing, nil
	default:
		return 0, fmt.Errorf("paulictl: unrecognized noise_kind %q", s)
	}
}

func buildGate(spec gateSpec) (gate.Applier[word, scalar], error) {
	switch spec.Kind {
	case "clifford":
		return gate.NewClifford[word, scalar](spec.Symbol, spec.Qubits)
	case "rotation":
		symbols, err := parseSymbols(spec.Symbols)
		if err != nil {
			return nil, err
		}
		rot := &gate.PauliRotation[word, scalar]{Symbols: symbols, QInds: spec.Qubits}
		if spec.Frozen {
			return &gate.FrozenGate[word, scalar]{Inner: rot, Parameter: spec.Angle}, nil
		}
		return rot, nil
	case "noise":
		kind, err := parseNoiseKind(spec.NoiseKind)
		if err != nil {
			return nil, err
		}
		return &gate.PauliNoise[word, scalar]{QInd: spec.Qubit, Strength: spec.Strength, Kind: kind}, nil
	case "amplitude_damping":
		return &gate.AmplitudeDampingNoise[word, scalar]{QInd: spec.Qubit, Gamma: spec.Gamma}, nil
	default:
		return nil, fmt.Errorf("paulictl: unrecognized gate kind %q", spec.Kind)
	}
}

// loadCircuit reads a JSON circuit file and returns the built circuit, seed
// sum, and driver parameters ready to hand to propagate.Propagate.
func loadCircuit(path string) (propagate.Circuit[word, scalar], sum.Sum[word, scalar], []float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paulictl: reading circuit file: %w", err)
	}
	var cf circuitFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, nil, nil, fmt.Errorf("paulictl: parsing circuit file: %w", err)
	}

	var circuit propagate.Circuit[word, scalar]
	for i, spec := range cf.Gates {
		if spec.Kind == "rx_layer" {
			circuit.AppendLayer(propagate.RXLayer, spec.N, spec.Angle, spec.Parity)
			continue
		}
		if spec.Kind == "zz_layer" {
			circuit.AppendLayer(propagate.ZZLayer, spec.N, spec.Angle, spec.Parity)
			continue
		}
		g, err := buildGate(spec)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("paulictl: gate %d: %w", i, err)
		}
		circuit.Append(g)
	}

	seedSymbols, err := parseSymbols(cf.Seed.String)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paulictl: seed: %w", err)
	}
	seedWord, err := pauli.FromSymbols[word](seedSymbols)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("paulictl: seed: %w", err)
	}
	seed := sum.NewKeyedFromTerm[word, scalar](cf.NQubits, seedWord, scalar(cf.Seed.Coeff))

	return circuit, seed, cf.Params, nil
}
