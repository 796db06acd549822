package organize

import "github.com/docsa/moodle-migrate/internal/models"

// Report summarizes one organizer run.
type Report struct {
	Copied       int
	Skipped      int
	Bytes        int64
	PrunedBlobs  int
	PrunedShards int
	PerCategory  map[models.Category]int
	// Indexes lists the generated index documents relative to the repository root.
	Indexes []string

	seen map[string]bool
}

func newReport() *Report {
	return &Report{
		PerCategory: make(map[models.Category]int),
		seen:        make(map[string]bool),
	}
}
