// Package embedder provides access to the external face embedding
// collaborator. The service never computes embeddings itself; it sends
// image bytes to an embedding server (or a local stub) and gets back a
// fixed-length float32 vector. Determinism is not assumed: the same
// image may embed to slightly different vectors across calls.
package embedder

import "context"

// Embedder converts image bytes into a fixed-length embedding vector.
type Embedder interface {
	Embed(ctx context.Context, imageData []byte) ([]float32, error)
}
