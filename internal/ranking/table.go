package ranking

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/amarchal/jobradar/internal/corpus"
)

// Row is one ranked posting: the job itself, the overall similarity and
// one score per declared category, parallel to Table.Categories.
type Row struct {
	Job            corpus.Record
	Overall        float64
	CategoryScores []float64
}

// Table is the ranked projection returned by the engine. Rows are sorted
// by Overall descending; ties preserve corpus order.
type Table struct {
	Categories []string
	Rows       []Row
}

// Columns returns the fixed column set: identity fields, overall, then
// one column per category in declaration order.
func (t *Table) Columns() []string {
	cols := []string{
		"job_title", "company_name", "job_location", "job_url", "job_description",
		"overall_similarity",
	}
	for _, c := range t.Categories {
		cols = append(cols, c+"_similarity")
	}
	return cols
}

// WriteJSON writes the table as a JSON array of row objects.
func (t *Table) WriteJSON(w io.Writer) error {
	rows := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		m := map[string]any{
			"job_title":          row.Job.JobTitle,
			"company_name":       row.Job.CompanyName,
			"job_location":       row.Job.JobLocation,
			"job_url":            row.Job.JobURL,
			"job_description":    row.Job.JobDescription,
			"overall_similarity": row.Overall,
		}
		for j, c := range t.Categories {
			m[c+"_similarity"] = row.CategoryScores[j]
		}
		rows[i] = m
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Render writes a human-readable listing of the table, descriptions
// omitted and location qualifiers stripped.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "overall\t")
	for _, c := range t.Categories {
		fmt.Fprintf(tw, "%s\t", c)
	}
	fmt.Fprint(tw, "title\tcompany\tlocation\n")

	for _, row := range t.Rows {
		fmt.Fprintf(tw, "%.4f\t", row.Overall)
		for _, s := range row.CategoryScores {
			fmt.Fprintf(tw, "%.4f\t", s)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Job.Title(), row.Job.Company(), corpus.StripParenthetical(row.Job.Location()))
	}

	return tw.Flush()
}
