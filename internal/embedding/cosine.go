package embedding

import "math"

// Cosine returns the cosine similarity of two vectors, in [-1, 1]. A zero
// vector yields 0.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize01 maps a similarity from [-1, 1] onto [0, 1] monotonically:
// -1 -> 0, 0 -> 0.5, 1 -> 1.
func Normalize01(x float64) float64 {
	return (x + 1) / 2
}
