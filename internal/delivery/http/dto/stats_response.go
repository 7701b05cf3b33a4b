package dto

import (
	"time"

	"jobradar/internal/domain/listing"
	"jobradar/internal/usecase"
)

type SourceCountResponse struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type RunLogResponse struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Status      string `json:"status"`
	JobsFound   int    `json:"jobsFound"`
	JobsCreated int    `json:"jobsCreated"`
	JobsUpdated int    `json:"jobsUpdated"`
	Error       string `json:"error,omitempty"`
	Duration    int64  `json:"duration"`
	CreatedAt   string `json:"createdAt"`
}

type StatsResponse struct {
	TotalActive  int                   `json:"totalActive"`
	TotalExpired int                   `json:"totalExpired"`
	BySource     []SourceCountResponse `json:"bySource"`
	RecentLogs   []RunLogResponse      `json:"recentLogs"`
}

func NewStatsResponse(s usecase.Stats) StatsResponse {
	bySource := make([]SourceCountResponse, 0, len(s.BySource))
	for _, sc := range s.BySource {
		bySource = append(bySource, SourceCountResponse{Source: sc.Source, Count: sc.Count})
	}

	logs := make([]RunLogResponse, 0, len(s.RecentLogs))
	for _, e := range s.RecentLogs {
		logs = append(logs, newRunLogResponse(e))
	}

	return StatsResponse{
		TotalActive:  s.TotalActive,
		TotalExpired: s.TotalExpired,
		BySource:     bySource,
		RecentLogs:   logs,
	}
}

func newRunLogResponse(e listing.RunLog) RunLogResponse {
	return RunLogResponse{
		ID:          e.ID.String(),
		Source:      e.Source,
		Status:      string(e.Status),
		JobsFound:   e.JobsFound,
		JobsCreated: e.JobsCreated,
		JobsUpdated: e.JobsUpdated,
		Error:       e.Error,
		Duration:    e.DurationMS,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
