package report

import (
	"time"

	"github.com/google/uuid"

	"svgvault/internal/integrity"
)

// Run records one batch validation invocation.
type Run struct {
	ID            string
	ContainersDir string
	OriginalsDir  string
	StartedAt     time.Time
	FinishedAt    time.Time
	Totals        integrity.Totals
}

// NewRun stamps a fresh run with a unique identifier and start time.
func NewRun(containersDir, originalsDir string) Run {
	return Run{
		ID:            uuid.NewString(),
		ContainersDir: containersDir,
		OriginalsDir:  originalsDir,
		StartedAt:     time.Now().UTC(),
	}
}
