package model

import (
	"hash/fnv"
	"math"
	"strings"
)

// embeddingDim is the size of the hashed character-trigram vectors.
// Small enough to stay cheap, large enough that unrelated strings
// rarely collide into high similarity.
const embeddingDim = 256

// embed maps a string to a unit-length hashed trigram vector.
// Identical strings always embed identically, which keeps the
// in-memory adapters deterministic.
func embed(s string) []float64 {
	v := make([]float64, embeddingDim)
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return v
	}
	padded := " " + s + " "
	for i := 0; i+3 <= len(padded); i++ {
		h := fnv.New32a()
		_, _ = h.Write([]byte(padded[i : i+3]))
		v[h.Sum32()%embeddingDim]++
	}

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// cosine returns the dot product of two unit vectors.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
