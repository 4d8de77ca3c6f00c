package ranking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/amarchal/jobradar/internal/corpus"
	"github.com/amarchal/jobradar/internal/embedding"
	"github.com/amarchal/jobradar/internal/language"
)

// Engine ranks a deduplicated job corpus against a candidate profile.
// The corpus is loaded once and cached; Invalidate forces a reload when
// the underlying batch file changes. Rank is a synchronous unit of work
// with no observable partial results.
type Engine struct {
	path   string
	oracle embedding.Oracle
	namer  language.Namer
	log    *zap.Logger

	mu     sync.Mutex
	cache  []corpus.Record
	loaded bool
}

// New returns an Engine over the batch file at path.
func New(path string, oracle embedding.Oracle, namer language.Namer, log *zap.Logger) *Engine {
	return &Engine{
		path:   path,
		oracle: oracle,
		namer:  namer,
		log:    log,
	}
}

// Invalidate drops the cached corpus so the next Rank reloads the file.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = nil
	e.loaded = false
}

// corpus returns the cached, normalized corpus, loading it on first use.
func (e *Engine) corpus() ([]corpus.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return e.cache, nil
	}

	records, err := corpus.ReadBatch(e.path)
	if err != nil {
		return nil, err
	}
	e.cache = corpus.Normalize(records)
	e.loaded = true
	e.log.Info("loaded job corpus",
		zap.String("path", e.path),
		zap.Int("raw", len(records)),
		zap.Int("deduplicated", len(e.cache)))
	return e.cache, nil
}

// Rank scores every job against the candidate text and each declared
// preference category, sorts by overall similarity descending (stable,
// ties preserve corpus order) and truncates to topN rows. A topN of zero
// or less keeps all rows. Embedding failures abort the call.
func (e *Engine) Rank(ctx context.Context, cvText string, prefs Preferences, topN int) (*Table, error) {
	jobs, err := e.corpus()
	if err != nil {
		return nil, err
	}

	composites := make([]string, len(jobs))
	titles := make([]string, len(jobs))
	locations := make([]string, len(jobs))
	tagged := make([]string, len(jobs))
	for i, job := range jobs {
		composite := job.Title() + " " + job.Description()
		composites[i] = composite
		titles[i] = job.Title()
		locations[i] = job.Location()
		tagged[i] = e.languageTagged(composite)
	}

	var sets [4][][]float32
	for set, texts := range map[embeddingSet][]string{
		setComposite: composites,
		setTitle:     titles,
		setLocation:  locations,
		setLanguage:  tagged,
	} {
		vectors, err := e.oracle.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed job corpus: %w", err)
		}
		sets[set] = vectors
	}

	cvVectors, err := e.oracle.Embed(ctx, []string{cvText})
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate text: %w", err)
	}
	cvVector := cvVectors[0]

	overall := make([]float64, len(jobs))
	for j := range jobs {
		overall[j] = embedding.Cosine(cvVector, sets[setComposite][j])
	}

	categoryScores := make([][]float64, len(prefs))
	for c, pref := range prefs {
		prefVectors, err := e.oracle.Embed(ctx, []string{pref.Text})
		if err != nil {
			return nil, fmt.Errorf("failed to embed preference %q: %w", pref.Category, err)
		}
		jobVectors := sets[setFor(pref.Category)]

		scores := make([]float64, len(jobs))
		for j := range jobs {
			scores[j] = embedding.Cosine(prefVectors[0], jobVectors[j])
		}
		categoryScores[c] = scores
	}

	order := make([]int, len(jobs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return overall[order[a]] > overall[order[b]]
	})
	if topN > 0 && topN < len(order) {
		order = order[:topN]
	}

	table := &Table{
		Categories: prefs.Categories(),
		Rows:       make([]Row, len(order)),
	}
	for i, j := range order {
		scores := make([]float64, len(prefs))
		for c := range prefs {
			scores[c] = categoryScores[c][j]
		}
		table.Rows[i] = Row{
			Job:            jobs[j],
			Overall:        overall[j],
			CategoryScores: scores,
		}
	}

	e.log.Info("ranked jobs", zap.Int("corpus", len(jobs)), zap.Int("returned", len(table.Rows)))
	return table, nil
}

// languageTagged prefixes the composite with its detected language name
// so a language preference can discriminate between offers.
func (e *Engine) languageTagged(composite string) string {
	name, _ := e.namer.Name(composite)
	return fmt.Sprintf("language: %s, offer: %s", name, composite)
}
