package listing

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
)

// StaleAfterDefault is how long a listing may go unreported by its source
// before the expiry sweep flags it.
const StaleAfterDefault = 48 * time.Hour

// Listing is one aggregated job offer, deduplicated by (Source, SourceID).
type Listing struct {
	ID             uuid.UUID
	Source         string
	SourceID       string
	Title          string
	Description    string
	Company        string
	Location       string
	Salary         string
	Tags           []string
	ApplicationURL string
	SourceURL      string
	Metadata       map[string]string
	Status         Status
	ScrapedAt      time.Time
	LastSeenAt     time.Time
}

type RunStatus string

const (
	RunSuccess RunStatus = "SUCCESS"
	RunPartial RunStatus = "PARTIAL"
	RunFailure RunStatus = "FAILURE"
)

// RunLog is one append-only row per adapter per aggregation run.
type RunLog struct {
	ID          uuid.UUID
	Source      string
	Status      RunStatus
	JobsFound   int
	JobsCreated int
	JobsUpdated int
	Error       string
	DurationMS  int64
	CreatedAt   time.Time
}

// SourceCount is a per-source active listing count for the stats endpoint.
type SourceCount struct {
	Source string
	Count  int
}
