// Command paulictl runs a Pauli-propagation circuit against a JSON
// description and reports either the resulting term sum or an overlap
// value, exercising package propagate and package overlap from the
// command line (spec §6's "EXTERNAL INTERFACES", Supplemented Feature 3).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paulictl",
		Short: "Run Heisenberg-picture Pauli-propagation circuits",
	}
	root.AddCommand(runCmd())
	root.AddCommand(overlapCmd())
	return root
}
