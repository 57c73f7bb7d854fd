package propagate

import (
	"github.com/pauliprop/pauliprop/cache"
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/kernel"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/sum"
)

// Propagate runs the apply/merge/truncate loop of §4.5 over a clone of
// seed, leaving the caller's sum untouched (§6.1's out-of-place form). It
// operates against the keyed cache shape; see PropagateDense for the dense
// form. The truncate step runs only when the sum is a *sum.Keyed; any other
// Sum implementation passed here is propagated and merged but not
// truncated.
func Propagate[W pauli.Word, C coeff.Rotatable[C]](circuit Circuit[W, C], seed sum.Sum[W, C], params []float64, opts Options[W, C]) (sum.Sum[W, C], error) {
	return PropagateInPlace(circuit, seed.Clone(), params, opts)
}

// PropagateInPlace runs the same loop but consumes seed directly (§6.1's
// in-place form), returning the same container once propagation completes.
func PropagateInPlace[W pauli.Word, C coeff.Rotatable[C]](circuit Circuit[W, C], seed sum.Sum[W, C], params []float64, opts Options[W, C]) (sum.Sum[W, C], error) {
	processedCircuit, processedParams, err := processCircuitAndParams[W, C](circuit, params, opts.Heisenberg)
	if err != nil {
		return nil, err
	}

	c := cache.New[W, C](seed)
	pred := opts.predicates()
	pi := 0
	for _, g := range processedCircuit {
		param := 0.0
		if g.IsParametrized() {
			param = processedParams[pi]
			pi++
		}
		if err := kernel.ApplyToAll[W, C](c, g, param); err != nil {
			return nil, err
		}
		if g.RequiresMerging() {
			kernel.Merge[W, C](c)
		}
		if keyed, ok := c.Main.(*sum.Keyed[W, C]); ok {
			if err := kernel.Truncate[W, C](keyed, pred); err != nil {
				return nil, err
			}
		}
	}
	return c.Main, nil
}

// PropagateDense is Propagate's dense-form counterpart, exercising the
// data-parallel kernels of package kernel (§5's concurrency model). It
// clones seed before mutating it.
func PropagateDense[W pauli.Word, C coeff.Rotatable[C]](circuit Circuit[W, C], seed *sum.Dense[W, C], params []float64, opts Options[W, C]) (*sum.Dense[W, C], error) {
	clone, ok := seed.Clone().(*sum.Dense[W, C])
	if !ok {
		panic("propagate: Dense.Clone returned a non-Dense Sum")
	}
	return PropagateDenseInPlace(circuit, clone, params, opts)
}

// PropagateDenseInPlace is PropagateInPlace's dense-form counterpart.
func PropagateDenseInPlace[W pauli.Word, C coeff.Rotatable[C]](circuit Circuit[W, C], seed *sum.Dense[W, C], params []float64, opts Options[W, C]) (*sum.Dense[W, C], error) {
	processedCircuit, processedParams, err := processCircuitAndParams[W, C](circuit, params, opts.Heisenberg)
	if err != nil {
		return nil, err
	}

	dc := &cache.DenseCache[W, C]{Main: seed, Aux: sum.NewDense[W, C](seed.NSites(), seed.ActiveSize())}
	pred := opts.predicates()
	pi := 0
	for _, g := range processedCircuit {
		param := 0.0
		if g.IsParametrized() {
			param = processedParams[pi]
			pi++
		}
		if err := kernel.DenseApplyToAll[W, C](dc, g, param); err != nil {
			return nil, err
		}
		if g.RequiresMerging() {
			if err := kernel.MergeDense[W, C](dc); err != nil {
				return nil, err
			}
		}
		if err := kernel.TruncateDense[W, C](dc, pred); err != nil {
			return nil, err
		}
	}
	return dc.Main, nil
}
