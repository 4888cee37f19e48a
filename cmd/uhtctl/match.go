package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhtdeck/gouht/pkg/pattern"
	"github.com/uhtdeck/gouht/pkg/trait"
)

var flagMatchTolerance int

var matchCmd = &cobra.Command{
	Use:   "match <code> <pattern>",
	Short: "Test a code against a 32-symbol 0/1/X pattern",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().IntVar(&flagMatchTolerance, "tolerance", 0, "Constrained positions allowed to mismatch")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, args []string) error {
	code := args[0]
	canonical := pattern.Canonical(args[1])

	mask, ok := pattern.Compile(canonical)
	if !ok {
		return fmt.Errorf("pattern must be %d symbols, got %d", pattern.Length, len(canonical))
	}

	v := trait.Decode(code)
	mismatches := mask.Distance(v)

	printSection("Match")
	fmt.Printf("  Code:    %s\n", trait.Canonical(code))
	fmt.Printf("  Pattern: %s\n", canonical)
	if mask.Matches(v, flagMatchTolerance) {
		printOK("", fmt.Sprintf("match, %d mismatch(es) within tolerance %d", mismatches, flagMatchTolerance))
	} else {
		printErr("", fmt.Sprintf("no match, %d mismatch(es) exceed tolerance %d", mismatches, flagMatchTolerance))
	}
	return nil
}
