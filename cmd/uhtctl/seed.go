package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/uhtdeck/gouht/internal/catalog"
	"github.com/uhtdeck/gouht/pkg/trait"
)

var (
	flagSeedCount int
	flagSeedOut   string
	flagSeedSeed  int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a random entity file for demos and tests",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&flagSeedCount, "count", 25, "Number of entities to generate")
	seedCmd.Flags().StringVar(&flagSeedOut, "out", "entities.json", "Output file")
	seedCmd.Flags().Int64Var(&flagSeedSeed, "seed", 1, "Random seed, same seed gives the same file")
	rootCmd.AddCommand(seedCmd)
}

var seedAdjectives = []string{
	"Crimson", "Silent", "Gilded", "Northern", "Hollow", "Iron", "Wandering", "Pale",
}

var seedNouns = []string{
	"Fox", "Warden", "Cartographer", "Tide", "Lantern", "Oracle", "Smith", "Raven",
}

var seedDescriptions = []string{
	"Keeps to the old roads and older habits.",
	"Known in three ports under three different names.",
	"Speaks rarely, and never about the war.",
	"Trades in maps, rumors, and favors.",
	"Has outlived every partner they ever took.",
}

func runSeed(_ *cobra.Command, _ []string) error {
	// Everything below draws from this one generator, so a fixed seed
	// reproduces the file exactly, IDs included.
	rnd := rand.New(rand.NewSource(flagSeedSeed))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	entities := make([]catalog.Entity, 0, flagSeedCount)
	for i := 0; i < flagSeedCount; i++ {
		id, err := uuid.NewRandomFromReader(rnd)
		if err != nil {
			return fmt.Errorf("cannot generate id: %w", err)
		}
		name := fmt.Sprintf("%s %s",
			seedAdjectives[rnd.Intn(len(seedAdjectives))],
			seedNouns[rnd.Intn(len(seedNouns))])
		ts := base + int64(i)*60000

		entities = append(entities, catalog.Entity{
			ID:          id.String(),
			Name:        name,
			Description: seedDescriptions[rnd.Intn(len(seedDescriptions))],
			Code:        trait.Encode(trait.Vector(rnd.Uint32())),
			CreatedAt:   ts,
			UpdatedAt:   ts,
		})
	}

	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagSeedOut, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", flagSeedOut, err)
	}

	printOK("", fmt.Sprintf("wrote %d entities to %s", flagSeedCount, flagSeedOut))
	return nil
}
