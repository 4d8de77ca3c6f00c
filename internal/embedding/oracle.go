// Package embedding provides the text-to-vector capability all similarity
// computation relies on, plus the cosine arithmetic over its output.
package embedding

import "context"

// Oracle maps a sequence of texts to fixed-length vectors. The result has
// the same length and order as the input and is deterministic for a fixed
// model identity.
type Oracle interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
