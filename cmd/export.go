package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export references and observations to JSON",
	Long: `Export enrolled references and capture records to a JSON file
that the import command can read back. Embeddings are base64-encoded
raw little-endian float32 buffers.

Examples:
  # Export the whole corpus
  face-insight export backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	st, pool, err := setupStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	refs, err := st.FetchReferences(ctx)
	if err != nil {
		return fmt.Errorf("fetching references: %w", err)
	}
	obs, err := st.FetchObservations(ctx, store.Filter{})
	if err != nil {
		return fmt.Errorf("fetching observations: %w", err)
	}

	var file importFile
	for _, ref := range refs {
		file.References = append(file.References, importReference{
			Name:      ref.Name,
			Embedding: base64.StdEncoding.EncodeToString(store.EncodeEmbedding(ref.Embedding)),
		})
	}
	for _, o := range obs {
		rec := importObservation{
			Filename:       o.Filename,
			HasFaces:       o.HasFaces,
			FaceCount:      o.FaceCount,
			MatchedPersons: o.MatchedPersons,
			Timestamp:      o.Timestamp,
			CameraLocation: o.CameraLocation,
		}
		if len(o.Embedding) > 0 {
			rec.Embedding = base64.StdEncoding.EncodeToString(store.EncodeEmbedding(o.Embedding))
		}
		file.Observations = append(file.Observations, rec)
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	fmt.Printf("Exported %d references and %d observations to %s\n",
		len(file.References), len(file.Observations), args[0])
	return nil
}
