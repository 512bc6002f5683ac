package store

import (
	"encoding/binary"
	"math"
)

// DecodeEmbedding reinterprets a raw byte buffer as a little-endian
// float32 vector of the given dimension. The buffer length must be
// exactly dim*4 bytes; anything else is a MalformedEmbeddingError.
func DecodeEmbedding(raw []byte, dim int) ([]float32, error) {
	if dim <= 0 || len(raw) != dim*4 {
		return nil, &MalformedEmbeddingError{Size: len(raw), Dim: dim}
	}

	vec := make([]float32, dim)
	for i := range vec {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		vec[i] = math.Float32frombits(bits)
	}
	return vec, nil
}

// EncodeEmbedding serializes a float32 vector to the little-endian byte
// layout used by the export format.
func EncodeEmbedding(vec []float32) []byte {
	raw := make([]byte, len(vec)*4)
	for i, x := range vec {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(x))
	}
	return raw
}
