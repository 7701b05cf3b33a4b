package dto

import (
	"time"

	"jobradar/internal/domain/listing"
	"jobradar/internal/usecase"
)

type ListingResponse struct {
	ID             string            `json:"id"`
	Source         string            `json:"source"`
	SourceID       string            `json:"sourceId"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Company        string            `json:"company"`
	Location       string            `json:"location"`
	Salary         string            `json:"salary,omitempty"`
	Tags           []string          `json:"tags"`
	ApplicationURL string            `json:"applicationUrl"`
	SourceURL      string            `json:"sourceUrl,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Status         string            `json:"status"`
	ScrapedAt      string            `json:"scrapedAt"`
	LastSeenAt     string            `json:"lastSeenAt"`
}

func NewListingResponse(l listing.Listing) ListingResponse {
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	return ListingResponse{
		ID:             l.ID.String(),
		Source:         l.Source,
		SourceID:       l.SourceID,
		Title:          l.Title,
		Description:    l.Description,
		Company:        l.Company,
		Location:       l.Location,
		Salary:         l.Salary,
		Tags:           tags,
		ApplicationURL: l.ApplicationURL,
		SourceURL:      l.SourceURL,
		Metadata:       l.Metadata,
		Status:         string(l.Status),
		ScrapedAt:      l.ScrapedAt.UTC().Format(time.RFC3339),
		LastSeenAt:     l.LastSeenAt.UTC().Format(time.RFC3339),
	}
}

type ListingListResponse struct {
	Jobs       []ListingResponse  `json:"jobs"`
	Pagination usecase.Pagination `json:"pagination"`
}

func NewListingListResponse(items []listing.Listing, p usecase.Pagination) ListingListResponse {
	jobs := make([]ListingResponse, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, NewListingResponse(it))
	}
	return ListingListResponse{Jobs: jobs, Pagination: p}
}
