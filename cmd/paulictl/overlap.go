package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pauliprop/pauliprop/overlap"
	"github.com/pauliprop/pauliprop/propagate"
)

func overlapCmd() *cobra.Command {
	var circuitPath, with, oneSites string
	cmd := &cobra.Command{
		Use:   "overlap",
		Short: "Propagate a circuit and report one of the §4.6 overlap values",
	}
	tf := addTruncationFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		circuit, seed, params, err := loadCircuit(circuitPath)
		if err != nil {
			return err
		}
		out, err := propagate.Propagate[word, scalar](circuit, seed, params, tf.options())
		if err != nil {
			return fmt.Errorf("paulictl overlap: %w", err)
		}

		var value float64
		switch with {
		case "zero":
			value, err = overlap.WithZero[word, scalar](out)
		case "plus":
			value, err = overlap.WithPlus[word, scalar](out)
		case "computational":
			sites, parseErr := parseIntList(oneSites)
			if parseErr != nil {
				return parseErr
			}
			value, err = overlap.WithComputational[word, scalar](out, sites)
		case "trace":
			value, err = overlap.Trace[word, scalar](out)
		default:
			return fmt.Errorf("paulictl overlap: unrecognized --with value %q", with)
		}
		if err != nil {
			return fmt.Errorf("paulictl overlap: %w", err)
		}
		fmt.Printf("%g\n", value)
		return nil
	}
	cmd.Flags().StringVar(&circuitPath, "circuit", "", "path to the JSON circuit description")
	cmd.Flags().StringVar(&with, "with", "zero", "reference state: zero, plus, computational, or trace")
	cmd.Flags().StringVar(&oneSites, "one-sites", "", "comma-separated 1-indexed sites set to 1 (computational only)")
	_ = cmd.MarkFlagRequired("circuit")
	return cmd
}

func parseIntList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("paulictl: bad --one-sites entry %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
