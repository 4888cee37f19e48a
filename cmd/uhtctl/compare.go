package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhtdeck/gouht/pkg/similarity"
	"github.com/uhtdeck/gouht/pkg/trait"
)

var compareCmd = &cobra.Command{
	Use:   "compare <code-a> <code-b>",
	Short: "Compare two codes by hamming distance, Jaccard, and trait overlap",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	a, b := args[0], args[1]
	r := similarity.Compare(a, b)
	c := similarity.CompareTraits(a, b)

	printSection("Compare")
	fmt.Printf("  A: %s\n", trait.Canonical(a))
	fmt.Printf("  B: %s\n", trait.Canonical(b))
	fmt.Printf("  Hamming distance: %d\n", r.HammingDistance)
	fmt.Printf("  Jaccard:          %.3f\n", r.Jaccard)
	fmt.Println()
	fmt.Printf("  Shared traits: %v\n", c.Shared)
	fmt.Printf("  Only in A:     %v\n", c.UniqueToA)
	fmt.Printf("  Only in B:     %v\n", c.UniqueToB)
	fmt.Printf("  Inactive in both: %d positions\n", len(c.Neither))
	return nil
}
