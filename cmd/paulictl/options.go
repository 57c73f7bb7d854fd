package main

import (
	"github.com/spf13/pflag"

	"github.com/pauliprop/pauliprop/kernel"
	"github.com/pauliprop/pauliprop/propagate"
)

// addTruncationFlags registers the §6.2 threshold knobs shared by run and
// overlap onto a command's flag set.
func addTruncationFlags(flags *pflag.FlagSet) *truncationFlags {
	tf := &truncationFlags{}
	flags.Float64Var(&tf.minAbsCoeff, "min-abs-coeff", -1, "drop terms below this magnitude (default: machine epsilon)")
	flags.IntVar(&tf.maxWeight, "max-weight", kernel.NoLimit, "drop terms heavier than this Pauli weight")
	flags.IntVar(&tf.maxFreq, "max-freq", kernel.NoLimit, "drop terms with more than this many sin/cos path factors")
	flags.IntVar(&tf.maxSins, "max-sins", kernel.NoLimit, "drop terms with more than this many sine path factors")
	flags.BoolVar(&tf.schrodinger, "schrodinger", false, "propagate in Schrödinger mode instead of the Heisenberg default")
	return tf
}

type truncationFlags struct {
	minAbsCoeff float64
	maxWeight   int
	maxFreq     int
	maxSins     int
	schrodinger bool
}

func (tf *truncationFlags) options() propagate.Options[word, scalar] {
	opts := propagate.DefaultOptions[word, scalar]()
	if tf.minAbsCoeff >= 0 {
		opts.MinAbsCoeff = tf.minAbsCoeff
	}
	opts.MaxWeight = tf.maxWeight
	opts.MaxFreq = tf.maxFreq
	opts.MaxSins = tf.maxSins
	opts.Heisenberg = !tf.schrodinger
	return opts
}
