package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import references and observations from a JSON export",
	Long: `Import enrolled reference identities and processed capture records
from a JSON file produced by the upstream detection pipeline.

Embeddings are base64-encoded raw little-endian float32 buffers. An
observation with a malformed embedding is imported without its vector
and reported at the end; a reference with a malformed embedding aborts
the import, since references are the comparison baseline.

Examples:
  # Import a pipeline export
  face-insight import export.json

  # Smaller write batches
  face-insight import export.json --batch-size 50`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Int("batch-size", 100, "Observations per database transaction")
}

// importReference mirrors one enrolled identity in the export file.
type importReference struct {
	Name      string `json:"name"`
	Embedding string `json:"embedding"`
}

// importObservation mirrors one processed capture in the export file.
type importObservation struct {
	Filename       string    `json:"filename"`
	HasFaces       bool      `json:"has_faces"`
	FaceCount      int       `json:"face_count"`
	MatchedPersons []string  `json:"matched_persons"`
	Embedding      string    `json:"embedding,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	CameraLocation string    `json:"camera_location"`
}

type importFile struct {
	References   []importReference   `json:"references"`
	Observations []importObservation `json:"observations"`
}

// decodeBase64Embedding decodes a base64 string into a vector of the
// given dimension.
func decodeBase64Embedding(encoded string, dim int) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return store.DecodeEmbedding(raw, dim)
}

func importReferences(ctx context.Context, st store.Store, refs []importReference, dim int) error {
	for _, ref := range refs {
		embedding, err := decodeBase64Embedding(ref.Embedding, dim)
		if err != nil {
			return fmt.Errorf("reference %q: %w", ref.Name, err)
		}
		if err := st.SaveReference(ctx, store.ReferenceRecord{
			Name:      ref.Name,
			Embedding: embedding,
		}); err != nil {
			return fmt.Errorf("saving reference %q: %w", ref.Name, err)
		}
	}
	return nil
}

func importObservations(ctx context.Context, st store.Store, obs []importObservation, dim, batchSize int) (int, error) {
	bar := progressbar.NewOptions(len(obs),
		progressbar.OptionSetDescription("Importing observations"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("records"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	skipped := 0
	batch := make([]store.ObservationRecord, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := st.SaveObservations(ctx, batch); err != nil {
			return fmt.Errorf("saving observations: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for _, o := range obs {
		record := store.ObservationRecord{
			Filename:       o.Filename,
			HasFaces:       o.HasFaces,
			FaceCount:      o.FaceCount,
			MatchedPersons: o.MatchedPersons,
			Timestamp:      o.Timestamp,
			CameraLocation: o.CameraLocation,
		}

		if o.Embedding != "" {
			embedding, err := decodeBase64Embedding(o.Embedding, dim)
			if err != nil {
				// Partial failure: the record is still worth keeping
				// for metadata queries, only the vector is lost.
				fmt.Printf("\nWarning: %s: %v (imported without embedding)\n", o.Filename, err)
				skipped++
			} else {
				record.Embedding = embedding
			}
		}

		batch = append(batch, record)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return skipped, err
			}
		}
		bar.Add(1)
	}

	if err := flush(); err != nil {
		return skipped, err
	}
	fmt.Println()
	return skipped, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	batchSize := mustGetInt(cmd, "batch-size")
	if batchSize <= 0 {
		batchSize = 100
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}

	var file importFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing import file: %w", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	st, pool, err := setupStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if len(file.References) > 0 {
		fmt.Printf("Importing %d references...\n", len(file.References))
		if err := importReferences(ctx, st, file.References, cfg.Embedder.Dim); err != nil {
			return err
		}
	}

	skipped := 0
	if len(file.Observations) > 0 {
		skipped, err = importObservations(ctx, st, file.Observations, cfg.Embedder.Dim, batchSize)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Imported %d references and %d observations", len(file.References), len(file.Observations))
	if skipped > 0 {
		fmt.Printf(" (%d without embeddings due to malformed vectors)", skipped)
	}
	fmt.Println()
	return nil
}
