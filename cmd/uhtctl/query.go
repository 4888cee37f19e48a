package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uhtdeck/gouht/pkg/query"
	"github.com/uhtdeck/gouht/pkg/trait"
)

var (
	flagQueryEntities string
	flagQueryLayers   []string
	flagQueryMin      int
	flagQueryPins     []string
	flagQueryHex      []string
	flagQueryText     string
	flagQuerySort     string
	flagQueryOrder    string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run the filter pipeline over an entity file",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&flagQueryEntities, "entities", "", "Entity JSON file (required)")
	queryCmd.Flags().StringSliceVar(&flagQueryLayers, "layer", nil, "Keep entities active in this layer (repeatable, Unknown selects empty vectors)")
	queryCmd.Flags().IntVar(&flagQueryMin, "min-traits", 0, "Minimum total active traits")
	queryCmd.Flags().StringSliceVar(&flagQueryPins, "pin", nil, "Pin a bit position, pos=symbol with symbol 0 or 1 (repeatable)")
	queryCmd.Flags().StringSliceVar(&flagQueryHex, "hex", nil, "Layer hex prefix, layer=prefix (repeatable)")
	queryCmd.Flags().StringVar(&flagQueryText, "text", "", "Free-text filter on name and description")
	queryCmd.Flags().StringVar(&flagQuerySort, "sort", string(query.SortByName), "Sort field: name, code, traits, created")
	queryCmd.Flags().StringVar(&flagQueryOrder, "order", string(query.Asc), "Sort order: asc or desc")
	_ = queryCmd.MarkFlagRequired("entities")
	rootCmd.AddCommand(queryCmd)
}

// parsePins converts --pin pos=symbol specs into pipeline pins.
func parsePins(specs []string) (map[int]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	pins := make(map[int]string, len(specs))
	for _, spec := range specs {
		pos, sym, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid pin %q, want pos=symbol", spec)
		}
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("invalid pin position %q: %w", pos, err)
		}
		pins[n] = sym
	}
	return pins, nil
}

// parseHexPrefixes converts --hex layer=prefix specs into the per-layer map.
func parseHexPrefixes(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	prefixes := make(map[string]string, len(specs))
	for _, spec := range specs {
		layer, prefix, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid hex filter %q, want layer=prefix", spec)
		}
		prefixes[layer] = prefix
	}
	return prefixes, nil
}

func runQuery(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	// Config supplies defaults only for flags the user left untouched.
	sortField := flagQuerySort
	if !cmd.Flags().Changed("sort") && cfg.DefaultSort != "" {
		sortField = cfg.DefaultSort
	}
	sortOrder := flagQueryOrder
	if !cmd.Flags().Changed("order") && cfg.DefaultOrder != "" {
		sortOrder = cfg.DefaultOrder
	}

	pins, err := parsePins(flagQueryPins)
	if err != nil {
		return err
	}
	prefixes, err := parseHexPrefixes(flagQueryHex)
	if err != nil {
		return err
	}

	entities, err := loadEntityFile(flagQueryEntities)
	if err != nil {
		return err
	}

	criteria := query.Criteria{
		Layers:      flagQueryLayers,
		MinTraits:   flagQueryMin,
		Pins:        pins,
		HexPrefixes: prefixes,
		Text:        flagQueryText,
		SortField:   query.SortField(sortField),
		SortOrder:   query.SortOrder(sortOrder),
	}
	rows := query.Run(toQueryEntities(entities), criteria)

	printSection("Query")
	printInfo(fmt.Sprintf("%d of %d entities match", len(rows), len(entities)))
	if len(rows) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tCODE\tDOMINANT\tTRAITS")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d\n",
			r.Entity.Name, trait.Canonical(r.Entity.Code), r.Metrics.DominantLayer, r.Metrics.TotalActive)
	}
	return w.Flush()
}
