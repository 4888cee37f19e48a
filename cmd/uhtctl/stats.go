package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uhtdeck/gouht/pkg/stats"
)

var (
	flagStatsFrequencies  string
	flagStatsCooccurrence string
	flagStatsExclusivity  string
	flagStatsTop          int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize externally computed trait statistics files",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&flagStatsFrequencies, "frequencies", "", "Frequency table JSON file")
	statsCmd.Flags().StringVar(&flagStatsCooccurrence, "cooccurrence", "", "Co-occurrence matrix JSON file")
	statsCmd.Flags().StringVar(&flagStatsExclusivity, "exclusivity", "", "Exclusivity pairs JSON file")
	statsCmd.Flags().IntVar(&flagStatsTop, "top", 5, "Rows to show per ranking")
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	if flagStatsFrequencies == "" && flagStatsCooccurrence == "" && flagStatsExclusivity == "" {
		return fmt.Errorf("provide at least one of --frequencies, --cooccurrence, --exclusivity")
	}

	if flagStatsFrequencies != "" {
		data, err := os.ReadFile(flagStatsFrequencies)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", flagStatsFrequencies, err)
		}
		tbl, err := stats.ParseFrequencyJSON(data)
		if err != nil {
			return err
		}
		printSection("Trait Frequencies")
		printInfo(fmt.Sprintf("population of %d entities", tbl.Total()))
		for _, bit := range tbl.TopBits(flagStatsTop) {
			fmt.Printf("  bit %2d: %d active (%.1f%%)\n",
				bit, tbl.FrequencyOf(bit), 100*tbl.ActiveRatio(bit))
		}
	}

	if flagStatsCooccurrence != "" {
		data, err := os.ReadFile(flagStatsCooccurrence)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", flagStatsCooccurrence, err)
		}
		m, err := stats.ParseCooccurrenceJSON(data)
		if err != nil {
			return err
		}
		printSection("Co-occurrence")
		fmt.Println("  Strongest pairs:")
		for _, p := range m.StrongestPairs(flagStatsTop) {
			fmt.Printf("    bits %2d & %2d: %.0f\n", p.BitA, p.BitB, p.Score)
		}
		fmt.Println("  Weakest pairs:")
		for _, p := range m.WeakestPairs(flagStatsTop) {
			fmt.Printf("    bits %2d & %2d: %.0f\n", p.BitA, p.BitB, p.Score)
		}
	}

	if flagStatsExclusivity != "" {
		data, err := os.ReadFile(flagStatsExclusivity)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", flagStatsExclusivity, err)
		}
		set, err := stats.ParseExclusivityJSON(data)
		if err != nil {
			return err
		}
		printSection("Exclusivity")
		printInfo(fmt.Sprintf("%d scored pairs", set.Len()))
		for _, p := range set.Top(flagStatsTop) {
			fmt.Printf("  bits %2d & %2d: %.2f\n", p.BitA, p.BitB, p.Score)
		}
	}
	return nil
}
