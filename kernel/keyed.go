package kernel

import (
	"github.com/pauliprop/pauliprop/cache"
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/gate"
	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/sum"
)

// ApplyToAll runs one gate over every term of c.Main, the keyed-form
// entry point of §4.4. The coefficient type parameter is pinned to
// coeff.Rotatable rather than the weaker coeff.Coefficient so that the type
// switch below can name gate.PauliRotation[W, C] directly: Go cannot assert
// to a generic instantiation whose constraint the caller's type parameter
// doesn't already guarantee. Numeric, Complex, and Path all satisfy
// Rotatable, so this costs ordinary callers nothing.
func ApplyToAll[W pauli.Word, C coeff.Rotatable[C]](c *cache.Cache[W, C], g gate.Applier[W, C], param float64) error {
	switch gt := g.(type) {
	case *gate.Clifford[W, C]:
		return applyCliffordKeyed(c, gt, param)
	case *gate.PauliRotation[W, C]:
		return applyRotationKeyed(c, gt, param)
	case *gate.PauliNoise[W, C]:
		return applyNoiseKeyed(c, gt, param)
	case *gate.AmplitudeDampingNoise[W, C]:
		return applyAmpDampKeyed(c, gt, param)
	default:
		return applyDefaultKeyed(c, g, param)
	}
}

// applyCliffordKeyed writes every image directly into aux with Set: a
// Clifford permutes strings bijectively, so two distinct input terms never
// land on the same output string and Set (rather than Add) is always safe.
// RequiresMerging is false for Clifford, so the driver never calls Merge
// after this; Merge is what normally empties aux (sum.MergeInto clears its
// src), so this function must reset aux itself after swapping, or the
// pre-gate main terms it demotes to aux leak straight back into the sum on
// a later swap.
func applyCliffordKeyed[W pauli.Word, C coeff.Coefficient[C]](c *cache.Cache[W, C], g *gate.Clifford[W, C], param float64) error {
	var firstErr error
	c.Main.Each(func(s W, coeffVal C) bool {
		terms, err := g.Apply(s, coeffVal, param)
		if err != nil {
			firstErr = err
			return false
		}
		c.Aux.Set(terms[0].String, terms[0].Coeff)
		return true
	})
	if firstErr != nil {
		return firstErr
	}
	c.Swap()
	c.Aux = c.Main.Similar()
	return nil
}

// applyRotationKeyed keeps the cosine branch at its original key in main
// (an in-place Set, never introducing a new key) and routes the sine branch
// through Add into aux, since two different input terms' sine branches can
// legitimately collide. The caller must follow with Merge to fold aux back
// into main (§4.4's "after the loop, merge folds aux back into main").
func applyRotationKeyed[W pauli.Word, C coeff.Rotatable[C]](c *cache.Cache[W, C], g *gate.PauliRotation[W, C], theta float64) error {
	var firstErr error
	c.Main.Each(func(s W, coeffVal C) bool {
		terms, err := g.Apply(s, coeffVal, theta)
		if err != nil {
			firstErr = err
			return false
		}
		if len(terms) == 1 {
			return true // commuting term, already correct in main
		}
		c.Main.Set(terms[0].String, terms[0].Coeff)
		c.Aux.Add(terms[1].String, terms[1].Coeff)
		return true
	})
	return firstErr
}

// applyNoiseKeyed is a pure diagonal scale: every branch keeps its input
// string, so it mutates main in place and never touches aux.
func applyNoiseKeyed[W pauli.Word, C coeff.Coefficient[C]](c *cache.Cache[W, C], g *gate.PauliNoise[W, C], param float64) error {
	var firstErr error
	c.Main.Each(func(s W, coeffVal C) bool {
		terms, err := g.Apply(s, coeffVal, param)
		if err != nil {
			firstErr = err
			return false
		}
		c.Main.Set(s, terms[0].Coeff)
		return true
	})
	return firstErr
}

// applyAmpDampKeyed keeps the unbranched (I, X, Y) case and the Z branch's
// surviving-Z term in place in main, and routes the Z branch's
// identity-at-site term through Add into aux, since it may collide with an
// existing all-identity-at-that-site term from a different input string.
func applyAmpDampKeyed[W pauli.Word, C coeff.Coefficient[C]](c *cache.Cache[W, C], g *gate.AmplitudeDampingNoise[W, C], param float64) error {
	var firstErr error
	c.Main.Each(func(s W, coeffVal C) bool {
		terms, err := g.Apply(s, coeffVal, param)
		if err != nil {
			firstErr = err
			return false
		}
		c.Main.Set(terms[0].String, terms[0].Coeff)
		if len(terms) == 2 {
			c.Aux.Add(terms[1].String, terms[1].Coeff)
		}
		return true
	})
	return firstErr
}

// applyDefaultKeyed is §4.4's default apply-to-all: every successor term of
// every input term is added into aux, then main and aux swap, leaving main
// fully correct on its own regardless of what the driver does next. This is
// the path every *gate.FrozenGate takes (it matches none of the four
// concrete types above), including the frozen PauliRotation layers
// Circuit.AppendLayer builds, whose inner gate reports RequiresMerging
// true — so the driver calls Merge after this returns. Merge is also what
// normally empties aux (sum.MergeInto clears its src), so this function
// must reset aux itself after swapping: otherwise the pre-gate main terms
// it just demoted to aux get unioned straight back into the freshly
// correct main by that Merge call.
func applyDefaultKeyed[W pauli.Word, C coeff.Coefficient[C]](c *cache.Cache[W, C], g gate.Applier[W, C], param float64) error {
	var firstErr error
	c.Main.Each(func(s W, coeffVal C) bool {
		terms, err := g.Apply(s, coeffVal, param)
		if err != nil {
			firstErr = err
			return false
		}
		for _, term := range terms {
			c.Aux.Add(term.String, term.Coeff)
		}
		return true
	})
	if firstErr != nil {
		return firstErr
	}
	c.Swap()
	c.Aux = c.Main.Similar()
	return nil
}

// Merge folds aux into main with coefficient addition and empties aux,
// the keyed-form merge step of §4.5. It swaps main and aux first when aux
// holds more terms, so the union always costs O(min(|main|,|aux|)) map
// writes into the larger of the two.
func Merge[W pauli.Word, C coeff.Coefficient[C]](c *cache.Cache[W, C]) {
	if c.Main.Length() < c.Aux.Length() {
		c.Swap()
	}
	if mainKeyed, ok := c.Main.(*sum.Keyed[W, C]); ok {
		if auxKeyed, ok2 := c.Aux.(*sum.Keyed[W, C]); ok2 {
			sum.MergeInto(mainKeyed, auxKeyed)
			return
		}
	}
	c.Aux.Each(func(s W, coeffVal C) bool {
		c.Main.Add(s, coeffVal)
		return true
	})
	c.Aux = c.Main.Similar()
}

// Truncate drops every term of k failing pr, via a delete pass that runs
// after collecting the doomed keys (map deletion during Keyed.Each is not
// attempted, since Each ranges the backing map directly).
func Truncate[W pauli.Word, C coeff.Coefficient[C]](k *sum.Keyed[W, C], pr Predicates[W, C]) error {
	var doomed []W
	var firstErr error
	k.Each(func(s W, coeffVal C) bool {
		trunc, err := shouldTruncate(s, coeffVal, pr)
		if err != nil {
			firstErr = err
			return false
		}
		if trunc {
			doomed = append(doomed, s)
		}
		return true
	})
	if firstErr != nil {
		return firstErr
	}
	for _, s := range doomed {
		k.Delete(s)
	}
	return nil
}
