// Package corpus persists crawl batches as columnar files and prepares
// them for ranking (deduplication and title cleanup).
package corpus

// Record is one raw job posting as captured by the crawler. Any field may
// be nil when extraction failed for that field alone.
type Record struct {
	JobTitle       *string `parquet:"job_title,optional" json:"job_title"`
	CompanyName    *string `parquet:"company_name,optional" json:"company_name"`
	JobLocation    *string `parquet:"job_location,optional" json:"job_location"`
	JobURL         *string `parquet:"job_url,optional" json:"job_url"`
	JobDescription *string `parquet:"job_description,optional" json:"job_description"`
}

// Title returns the job title or the empty string when absent.
func (r Record) Title() string { return deref(r.JobTitle) }

// Company returns the company name or the empty string when absent.
func (r Record) Company() string { return deref(r.CompanyName) }

// Location returns the job location or the empty string when absent.
func (r Record) Location() string { return deref(r.JobLocation) }

// URL returns the job URL or the empty string when absent.
func (r Record) URL() string { return deref(r.JobURL) }

// Description returns the job description or the empty string when absent.
func (r Record) Description() string { return deref(r.JobDescription) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
