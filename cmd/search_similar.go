package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/search"
	"github.com/spf13/cobra"
)

var searchSimilarCmd = &cobra.Command{
	Use:   "similar [name]",
	Short: "Find captures matching an enrolled identity",
	Long: `Find every capture whose face embedding matches the enrolled
reference for the given identity.

The name tolerates slug and diacritic variants ("jan-novak" finds
"Jan Novák"). An unenrolled name is an empty result, not an error.

Examples:
  # Find captures of Alice
  face-insight search similar Alice

  # Stricter threshold
  face-insight search similar Alice --threshold 0.9

  # Output as JSON
  face-insight search similar Alice --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearchSimilar,
}

func init() {
	searchCmd.AddCommand(searchSimilarCmd)

	searchSimilarCmd.Flags().Float64("threshold", 0, "Minimum similarity (default from config)")
	searchSimilarCmd.Flags().Bool("json", false, "Output as JSON")
}

// printMatches renders similarity matches as a table.
func printMatches(matches []search.Match) {
	if len(matches) == 0 {
		fmt.Println("No matches found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILENAME\tSIMILARITY\tLOCATION\tCAPTURED")
	for _, m := range matches {
		captured := ""
		if !m.Record.Timestamp.IsZero() {
			captured = m.Record.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%.4f\t%s\t%s\n",
			m.Record.Filename, m.Similarity, m.Record.CameraLocation, captured)
	}
	w.Flush()
}

func runSearchSimilar(cmd *cobra.Command, args []string) error {
	threshold := mustGetFloat64(cmd, "threshold")
	jsonOutput := mustGetBool(cmd, "json")

	cfg := config.Load()
	ctx := context.Background()

	svc, pool, err := setupService(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	matches, err := svc.FindMatchesForIdentity(ctx, args[0], threshold)
	if err != nil {
		return err
	}

	if jsonOutput {
		type matchOut struct {
			Filename   string  `json:"filename"`
			Similarity float64 `json:"similarity"`
		}
		out := make([]matchOut, len(matches))
		for i, m := range matches {
			out[i] = matchOut{Filename: m.Record.Filename, Similarity: m.Similarity}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	printMatches(matches)
	return nil
}
