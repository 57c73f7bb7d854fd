package kernel

import (
	"context"
	"runtime"
	"sort"

	"github.com/pauliprop/pauliprop/cache"
	"github.com/pauliprop/pauliprop/coeff"
	"github.com/pauliprop/pauliprop/gate"
	"github.com/pauliprop/pauliprop/internal/pscan"
	"github.com/pauliprop/pauliprop/pauli"
)

func workerCount() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

func firstError(errs []error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// DenseApplyToAll is the dense-form counterpart of ApplyToAll. Clifford and
// PauliNoise keep one term per input term, so they get index-preserving
// specializations; everything else (PauliRotation, AmplitudeDampingNoise,
// FrozenGate, user gates) goes through the variable-arity branching path,
// which computes each term's output count before writing so every
// goroutine can claim a disjoint destination range up front (§5's "no
// partial publication" rule).
func DenseApplyToAll[W pauli.Word, C coeff.Rotatable[C]](dc *cache.DenseCache[W, C], g gate.Applier[W, C], param float64) error {
	switch gt := g.(type) {
	case *gate.Clifford[W, C]:
		return applyCliffordDense(dc, gt, param)
	case *gate.PauliNoise[W, C]:
		return applyNoiseDense(dc, gt, param)
	default:
		return applyBranchingDense(dc, g, param)
	}
}

// applyCliffordDense exploits bijectivity: term i's image can only ever be
// written to slot i, so no destination-offset computation is needed at all.
func applyCliffordDense[W pauli.Word, C coeff.Coefficient[C]](dc *cache.DenseCache[W, C], g *gate.Clifford[W, C], param float64) error {
	n := dc.Main.ActiveSize()
	terms := dc.Main.Terms()
	coeffs := dc.Main.Coeffs()
	if err := dc.Aux.EnsureCapacity(n); err != nil {
		return err
	}
	errs := make([]error, n)
	if err := pscan.ParallelFor(context.Background(), n, workerCount(), func(i int) {
		out, applyErr := g.Apply(terms[i], coeffs[i], param)
		if applyErr != nil {
			errs[i] = applyErr
			return
		}
		dc.Aux.WriteAt(i, out[0].String, out[0].Coeff)
	}); err != nil {
		return err
	}
	if err := firstError(errs); err != nil {
		return err
	}
	dc.Aux.SetActiveSize(n)
	dc.Swap()
	return nil
}

// applyNoiseDense is a pure diagonal scale: it rewrites main's coefficient
// column in place and never touches aux.
func applyNoiseDense[W pauli.Word, C coeff.Coefficient[C]](dc *cache.DenseCache[W, C], g *gate.PauliNoise[W, C], param float64) error {
	n := dc.Main.ActiveSize()
	terms := dc.Main.Terms()
	coeffs := dc.Main.Coeffs()
	errs := make([]error, n)
	if err := pscan.ParallelFor(context.Background(), n, workerCount(), func(i int) {
		out, applyErr := g.Apply(terms[i], coeffs[i], param)
		if applyErr != nil {
			errs[i] = applyErr
			return
		}
		dc.Main.WriteAt(i, terms[i], out[0].Coeff)
	}); err != nil {
		return err
	}
	return firstError(errs)
}

// applyBranchingDense handles gates whose term count varies per input
// (0, 1, or 2 successors): each input term's successors are computed
// concurrently into a per-index slice, their lengths prefix-summed into
// destination offsets sequentially (a loop-carried dependency, same as
// pscan.Flags2Offsets), then the writes themselves run concurrently again
// since each claims a disjoint [offset, offset+count) range.
func applyBranchingDense[W pauli.Word, C coeff.Rotatable[C]](dc *cache.DenseCache[W, C], g gate.Applier[W, C], param float64) error {
	n := dc.Main.ActiveSize()
	terms := dc.Main.Terms()
	coeffs := dc.Main.Coeffs()

	results := make([][]gate.Term[W, C], n)
	errs := make([]error, n)
	if err := pscan.ParallelFor(context.Background(), n, workerCount(), func(i int) {
		out, applyErr := g.Apply(terms[i], coeffs[i], param)
		if applyErr != nil {
			errs[i] = applyErr
			return
		}
		results[i] = out
	}); err != nil {
		return err
	}
	if err := firstError(errs); err != nil {
		return err
	}

	offsets := make([]int, n)
	total := 0
	for i := 0; i < n; i++ {
		offsets[i] = total
		total += len(results[i])
	}
	if err := dc.Aux.EnsureCapacity(total); err != nil {
		return err
	}
	if err := pscan.ParallelFor(context.Background(), n, workerCount(), func(i int) {
		base := offsets[i]
		for j, term := range results[i] {
			dc.Aux.WriteAt(base+j, term.String, term.Coeff)
		}
	}); err != nil {
		return err
	}
	dc.Aux.SetActiveSize(total)
	dc.Swap()
	return nil
}

// MergeDense implements §4.5's dense-form merge: sort the active terms by
// string, flag each run's first occurrence, prefix-sum the flags into
// destination offsets, then sum each run's coefficients into its
// destination in aux. Only the flag-to-offset prefix sum goes through
// pscan (and runs in parallel for large inputs); the sort, the flagging
// pass, and the per-run summation pass are sequential loops.
func MergeDense[W pauli.Word, C coeff.Coefficient[C]](dc *cache.DenseCache[W, C]) error {
	n := dc.Main.ActiveSize()
	if n == 0 {
		return nil
	}
	terms := dc.Main.Terms()
	coeffs := dc.Main.Coeffs()

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return terms[order[a]] < terms[order[b]] })

	flags := dc.Main.Flags()[:n]
	flags[0] = true
	for i := 1; i < n; i++ {
		flags[i] = terms[order[i]] != terms[order[i-1]]
	}
	offsets := dc.Main.Idx()[:n]
	unique, err := pscan.ParallelFlags2Offsets(context.Background(), flags, offsets, workerCount())
	if err != nil {
		return err
	}
	if unique == n {
		return nil // every string already distinct, nothing to fold
	}

	if err := dc.Aux.EnsureCapacity(unique); err != nil {
		return err
	}
	i := 0
	for i < n {
		dest := offsets[i]
		key := terms[order[i]]
		acc := coeffs[order[i]]
		j := i + 1
		for j < n && !flags[j] {
			acc = acc.Add(coeffs[order[j]])
			j++
		}
		dc.Aux.WriteAt(dest, key, acc)
		i = j
	}
	dc.Aux.SetActiveSize(unique)
	dc.Swap()
	return nil
}

// TruncateDense implements §4.5's dense-form truncate: flag every term that
// survives pr, prefix-sum the flags into compaction offsets, then copy the
// survivors into aux in one data-parallel pass.
func TruncateDense[W pauli.Word, C coeff.Coefficient[C]](dc *cache.DenseCache[W, C], pr Predicates[W, C]) error {
	n := dc.Main.ActiveSize()
	if n == 0 {
		return nil
	}
	terms := dc.Main.Terms()
	coeffs := dc.Main.Coeffs()

	keep := dc.Main.Flags()[:n]
	for i := 0; i < n; i++ {
		trunc, err := shouldTruncate(terms[i], coeffs[i], pr)
		if err != nil {
			return err
		}
		keep[i] = !trunc
	}
	offsets := dc.Main.Idx()[:n]
	kept, err := pscan.ParallelFlags2Offsets(context.Background(), keep, offsets, workerCount())
	if err != nil {
		return err
	}
	if kept == n {
		return nil
	}

	if err := dc.Aux.EnsureCapacity(kept); err != nil {
		return err
	}
	if err := pscan.ParallelFor(context.Background(), n, workerCount(), func(i int) {
		if keep[i] {
			dc.Aux.WriteAt(offsets[i], terms[i], coeffs[i])
		}
	}); err != nil {
		return err
	}
	dc.Aux.SetActiveSize(kept)
	dc.Swap()
	return nil
}
