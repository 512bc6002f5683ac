package embedder

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/nill-home/face-insight/internal/vectormath"
)

// Static is a development stand-in for a real embedding server. It
// derives a unit vector from a hash of the image bytes, so identical
// inputs embed identically within one process. It has no recognition
// power whatsoever; it only exists so the full pipeline can run without
// the external collaborator.
type Static struct {
	dim int
}

// NewStatic creates a stub embedder producing vectors of the given dimension.
func NewStatic(dim int) *Static {
	return &Static{dim: dim}
}

// Embed derives a pseudo-random unit vector from the image bytes.
func (s *Static) Embed(ctx context.Context, imageData []byte) ([]float32, error) {
	h := fnv.New64a()
	h.Write(imageData)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float32, s.dim)
	for i := range vec {
		vec[i] = float32(rng.NormFloat64())
	}
	return vectormath.Normalize(vec), nil
}
