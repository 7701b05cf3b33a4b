package aggregator

import "context"

// NormalizedListing is the canonical shape a source adapter produces before
// persistence. SourceID is the provider's own identifier and is only unique
// within the owning source.
type NormalizedListing struct {
	Title          string
	Description    string
	Company        string
	Location       string
	Salary         string
	Tags           []string
	ApplicationURL string
	SourceID       string
	SourceURL      string
	Metadata       map[string]string
}

// ScrapeResult carries one adapter's output for a single run. Err is set when
// the first request to the provider failed; a later page failing leaves Err
// empty and simply yields fewer jobs.
type ScrapeResult struct {
	Source string
	Jobs   []NormalizedListing
	Err    string
}

// Source is one pluggable provider adapter. Implementations capture ordinary
// network and decode failures in ScrapeResult.Err; a returned error is
// reserved for failures the adapter could not absorb and makes the engine
// record the run as FAILURE.
type Source interface {
	Source() string
	DisplayName() string
	Scrape(ctx context.Context) (ScrapeResult, error)
}
