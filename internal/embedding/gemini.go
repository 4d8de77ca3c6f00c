package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "text-embedding-004"

const (
	// batchSize is the maximum number of contents per BatchEmbedContents call.
	batchSize = 100
	// maxInFlight bounds concurrent embedding requests.
	maxInFlight = 4
)

// Gemini embeds text through the Gemini embedding API. Batches are issued
// with bounded parallelism but Embed itself is a synchronous unit of work;
// the first failed batch aborts the whole call.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini oracle. An empty model selects DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Embed implements Oracle.
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(maxInFlight)

	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		start, end := start, end

		grp.Go(func() error {
			model := g.client.EmbeddingModel(g.model)
			batch := model.NewBatch()
			for _, text := range texts[start:end] {
				batch.AddContent(genai.Text(text))
			}

			resp, err := model.BatchEmbedContents(ctx, batch)
			if err != nil {
				return fmt.Errorf("failed to embed batch [%d:%d]: %w", start, end, err)
			}
			if len(resp.Embeddings) != end-start {
				return fmt.Errorf("embedding batch [%d:%d] returned %d vectors", start, end, len(resp.Embeddings))
			}
			for i, emb := range resp.Embeddings {
				out[start+i] = emb.Values
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
