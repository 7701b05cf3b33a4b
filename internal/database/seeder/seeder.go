package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobradar/internal/domain/listing"
	"jobradar/internal/repository"

	"github.com/google/uuid"
)

// Seeder inserts a handful of sample listings so a fresh local environment
// serves data before the first aggregation run completes. It is a no-op when
// any active listing already exists.
type Seeder struct {
	repo   repository.ListingRepository
	logger *log.Logger
}

func New(repo repository.ListingRepository, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.Default()
	}
	return &Seeder{repo: repo, logger: logger}
}

func (s *Seeder) Run(ctx context.Context) error {
	n, err := s.repo.Count(ctx, repository.ListingFilter{})
	if err != nil {
		return fmt.Errorf("seeder count: %w", err)
	}
	if n > 0 {
		s.logger.Printf("[Seeder] Skipped, %d active listing(s) present", n)
		return nil
	}

	now := time.Now().UTC()
	rows := sampleListings(now)
	for _, l := range rows {
		if err := s.repo.Create(ctx, l); err != nil {
			return fmt.Errorf("seeder insert %s/%s: %w", l.Source, l.SourceID, err)
		}
	}

	s.logger.Printf("[Seeder] Inserted %d sample listing(s)", len(rows))
	return nil
}

func sampleListings(now time.Time) []listing.Listing {
	base := func(source, sourceID, title, company, location string, tags []string) listing.Listing {
		return listing.Listing{
			ID:             uuid.New(),
			Source:         source,
			SourceID:       sourceID,
			Title:          title,
			Description:    "Sample listing inserted for local development.",
			Company:        company,
			Location:       location,
			Tags:           tags,
			ApplicationURL: "https://example.com/jobs/" + sourceID,
			SourceURL:      "https://example.com/jobs/" + sourceID,
			Metadata:       map[string]string{"seeded": "true"},
			Status:         listing.StatusActive,
			ScrapedAt:      now,
			LastSeenAt:     now,
		}
	}

	return []listing.Listing{
		base("remotive", "sample-1", "Backend Engineer (Go)", "Acme Remote", "Remote", []string{"go", "postgres"}),
		base("remotive", "sample-2", "Data Engineering Intern", "Northwind", "Remote", []string{"python", "internship"}),
		base("arbeitnow", "sample-3", "Site Reliability Engineer", "Contoso GmbH", "Berlin", []string{"kubernetes", "devops"}),
	}
}
