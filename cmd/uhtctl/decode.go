package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhtdeck/gouht/pkg/query"
	"github.com/uhtdeck/gouht/pkg/trait"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <code>",
	Short: "Decode a UHT code into its layer breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(_ *cobra.Command, args []string) error {
	code := args[0]
	v := trait.Decode(code)
	m := query.ComputeMetrics(code)

	printSection("Decode")
	if !trait.Valid(code) {
		printErr("", fmt.Sprintf("%q is not a valid code, decoding as %s", code, trait.ZeroCode))
	}
	fmt.Printf("  Code:    %s\n", trait.Canonical(code))
	fmt.Printf("  Binary:  %s\n", v.Binary())
	fmt.Printf("  Active:  %d traits\n", m.TotalActive)
	fmt.Printf("  Dominant layer: %s\n", m.DominantLayer)
	fmt.Println()
	for i, l := range trait.Layers {
		fmt.Printf("  %-10s %s  %s  (%d active)\n",
			l.String(), trait.LayerHex(code, l), trait.LayerBinary(code, l), m.LayerCounts[i])
	}
	return nil
}
