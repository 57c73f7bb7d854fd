package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pauliprop/pauliprop/pauli"
	"github.com/pauliprop/pauliprop/propagate"
)

func runCmd() *cobra.Command {
	var circuitPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Propagate a circuit against a seed sum and print the result",
	}
	tf := addTruncationFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		circuit, seed, params, err := loadCircuit(circuitPath)
		if err != nil {
			return err
		}
		out, err := propagate.Propagate[word, scalar](circuit, seed, params, tf.options())
		if err != nil {
			return fmt.Errorf("paulictl run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "propagated %d terms\n", out.Length())
		var printErr error
		out.Each(func(s word, c scalar) bool {
			symbols, err := pauli.ToSymbols[word](s, out.NSites())
			if err != nil {
				printErr = err
				return false
			}
			fmt.Printf("%s\t%g\n", symbolsToString(symbols), float64(c))
			return true
		})
		return printErr
	}
	cmd.Flags().StringVar(&circuitPath, "circuit", "", "path to the JSON circuit description")
	_ = cmd.MarkFlagRequired("circuit")
	return cmd
}

func symbolsToString(symbols []pauli.Symbol) string {
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s.String())
	}
	return b.String()
}
