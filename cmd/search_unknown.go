package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/spf13/cobra"
)

var searchUnknownCmd = &cobra.Command{
	Use:   "unknown",
	Short: "Find captures with unidentified faces",
	Long: `Find captures containing faces that could not be identified.

By default the decision is similarity-based: a face counts as unknown
when its best score against every enrolled reference stays below the
threshold. With --metadata the decision uses detection counts only:
a capture is flagged when it holds more faces than matched names.

Examples:
  # Similarity-based unknowns
  face-insight search unknown

  # More tolerant threshold
  face-insight search unknown --threshold 0.6

  # Count-based unknowns (no vector math)
  face-insight search unknown --metadata`,
	RunE: runSearchUnknown,
}

func init() {
	searchCmd.AddCommand(searchUnknownCmd)

	searchUnknownCmd.Flags().Float64("threshold", 0, "Maximum similarity to count as unknown (default from config)")
	searchUnknownCmd.Flags().Bool("metadata", false, "Use face count vs matched names instead of similarity")
	searchUnknownCmd.Flags().Bool("json", false, "Output as JSON")
}

func runSearchUnknown(cmd *cobra.Command, args []string) error {
	threshold := mustGetFloat64(cmd, "threshold")
	useMetadata := mustGetBool(cmd, "metadata")
	jsonOutput := mustGetBool(cmd, "json")

	cfg := config.Load()
	ctx := context.Background()

	svc, pool, err := setupService(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if useMetadata {
		records, err := svc.FindUnknownByCount(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			type recordOut struct {
				Filename       string   `json:"filename"`
				FaceCount      int      `json:"face_count"`
				MatchedPersons []string `json:"matched_persons"`
			}
			out := make([]recordOut, len(records))
			for i, rec := range records {
				out[i] = recordOut{rec.Filename, rec.FaceCount, rec.MatchedPersons}
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		if len(records) == 0 {
			fmt.Println("No captures with unidentified faces")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILENAME\tFACES\tMATCHED")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%d\t%s\n", rec.Filename, rec.FaceCount, strings.Join(rec.MatchedPersons, ", "))
		}
		w.Flush()
		return nil
	}

	unknown, err := svc.FindUnknownBySimilarity(ctx, threshold)
	if err != nil {
		return err
	}

	if jsonOutput {
		type unknownOut struct {
			Filename      string  `json:"filename"`
			MaxSimilarity float64 `json:"max_similarity"`
		}
		out := make([]unknownOut, len(unknown))
		for i, u := range unknown {
			out[i] = unknownOut{u.Record.Filename, u.MaxSimilarity}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	if len(unknown) == 0 {
		fmt.Println("No unknown faces found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILENAME\tBEST SCORE\tLOCATION")
	for _, u := range unknown {
		fmt.Fprintf(w, "%s\t%.4f\t%s\n", u.Record.Filename, u.MaxSimilarity, u.Record.CameraLocation)
	}
	w.Flush()
	return nil
}
