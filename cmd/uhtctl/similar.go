package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/uhtdeck/gouht/internal/catalog"
	"github.com/uhtdeck/gouht/pkg/similarity"
	"github.com/uhtdeck/gouht/pkg/trait"
)

var (
	flagSimilarEntities string
	flagSimilarK        int
)

var similarCmd = &cobra.Command{
	Use:   "similar <code>",
	Short: "Find the entities nearest a code by vector distance",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringVar(&flagSimilarEntities, "entities", "", "Entity JSON file (required)")
	similarCmd.Flags().IntVar(&flagSimilarK, "k", 5, "Number of neighbors to return")
	_ = similarCmd.MarkFlagRequired("entities")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(_ *cobra.Command, args []string) error {
	code := args[0]
	entities, err := loadEntityFile(flagSimilarEntities)
	if err != nil {
		return err
	}

	// Load the file into a throwaway in-memory catalog so the vector
	// table does the neighbor search.
	cat, err := catalog.NewSQLiteCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	now := time.Now().UnixMilli()
	for i := range entities {
		e := entities[i]
		e.EnsureID()
		e.Touch(now)
		if err := cat.UpsertEntity(&e); err != nil {
			return fmt.Errorf("cannot index %s: %w", e.Name, err)
		}
	}

	neighbors, err := cat.SimilarEntities(code, flagSimilarK)
	if err != nil {
		return err
	}

	printSection("Similar")
	fmt.Printf("  Target: %s\n", trait.Canonical(code))
	printInfo(fmt.Sprintf("%d neighbor(s) from %d entities", len(neighbors), len(entities)))
	if len(neighbors) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tCODE\tHAMMING\tJACCARD")
	for _, e := range neighbors {
		fmt.Fprintf(w, "  %s\t%s\t%d\t%.3f\n",
			e.Name, trait.Canonical(e.Code),
			similarity.HammingDistance(code, e.Code), similarity.Jaccard(code, e.Code))
	}
	return w.Flush()
}
