package docsite

import "time"

// IndexReport summarises one indexing run.
type IndexReport struct {
	Pages    int
	Missing  []string // navigation entries with no page source
	Duration time.Duration
}
