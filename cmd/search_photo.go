package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/spf13/cobra"
)

var searchPhotoCmd = &cobra.Command{
	Use:   "photo [file]",
	Short: "Rank captures by similarity to a photo",
	Long: `Embed a photo and return the most similar stored captures,
best match first.

Examples:
  # Top 5 look-alikes
  face-insight search photo query.jpg

  # More results
  face-insight search photo query.jpg --top-k 20

  # Output as JSON
  face-insight search photo query.jpg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearchPhoto,
}

func init() {
	searchCmd.AddCommand(searchPhotoCmd)

	searchPhotoCmd.Flags().Int("top-k", 0, "Number of results (default from config)")
	searchPhotoCmd.Flags().Bool("json", false, "Output as JSON")
	searchPhotoCmd.Flags().Bool("build-index", false, "Build the similarity index before searching")
}

func runSearchPhoto(cmd *cobra.Command, args []string) error {
	topK := mustGetInt(cmd, "top-k")
	jsonOutput := mustGetBool(cmd, "json")

	imageData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading photo: %w", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	svc, pool, err := setupService(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if mustGetBool(cmd, "build-index") {
		if _, err := svc.RebuildIndex(ctx); err != nil {
			return fmt.Errorf("building similarity index: %w", err)
		}
	}

	results, err := svc.RankByPhoto(ctx, imageData, topK)
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No comparable captures found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tFILENAME\tSIMILARITY\tLOCATION")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%s\n", r.Rank, r.Filename, r.Similarity, r.CameraLocation)
	}
	w.Flush()
	return nil
}
