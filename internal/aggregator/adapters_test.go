package aggregator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRemotiveSource_Scrape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/remote-jobs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": [{
			"id": 42,
			"url": "https://remotive.com/jobs/42",
			"title": "Backend Engineer",
			"company_name": "Acme",
			"category": "Software Development",
			"tags": ["go", "postgres"],
			"job_type": "full_time",
			"publication_date": "2025-01-01T00:00:00",
			"candidate_required_location": "",
			"salary": "$90k",
			"description": "<p>Build&nbsp;things</p>"
		}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewRemotiveSourceWithBaseURL(server.URL, 5*time.Second)

	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Err != "" {
		t.Fatalf("unexpected result error: %s", res.Err)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(res.Jobs))
	}

	j := res.Jobs[0]
	if j.SourceID != "42" {
		t.Fatalf("expected source id 42, got %q", j.SourceID)
	}
	if j.Location != "Remote" {
		t.Fatalf("expected Remote location fallback, got %q", j.Location)
	}
	if j.Description != "Build things" {
		t.Fatalf("expected sanitized description, got %q", j.Description)
	}
	if len(j.Tags) != 4 {
		t.Fatalf("expected tags + category + job_type, got %v", j.Tags)
	}
}

func TestRemotiveSource_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewRemotiveSourceWithBaseURL(server.URL, 5*time.Second)

	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(res.Jobs))
	}
	if res.Err == "" || !strings.Contains(res.Err, "503") {
		t.Fatalf("expected error mentioning status 503, got %q", res.Err)
	}
}

func TestArbeitnowSource_Pagination(t *testing.T) {
	var pageCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/job-board-api", func(w http.ResponseWriter, r *http.Request) {
		pageCalls.Add(1)
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`{
				"data": [{"slug": "job-one", "company_name": "Acme", "title": "Dev", "description": "d", "remote": true, "url": "https://arbeitnow.com/jobs/job-one", "tags": [], "job_types": ["full-time"], "location": "", "created_at": 1}],
				"links": {"next": "https://arbeitnow.com/api/job-board-api?page=2"}
			}`))
		case "2":
			_, _ = w.Write([]byte(`{
				"data": [{"slug": "job-two", "company_name": "Beta", "title": "Ops", "description": "d", "remote": false, "url": "https://arbeitnow.com/jobs/job-two", "tags": [], "job_types": [], "location": "Berlin", "created_at": 2}],
				"links": {"next": "https://arbeitnow.com/api/job-board-api?page=3"}
			}`))
		default:
			t.Errorf("unexpected page request: %s", r.URL.RawQuery)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewArbeitnowSourceWithBaseURL(server.URL, 5*time.Second)

	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Err != "" {
		t.Fatalf("unexpected result error: %s", res.Err)
	}
	// Page cap stops pagination even though page 2 advertises a next link.
	if got := pageCalls.Load(); got != 2 {
		t.Fatalf("expected 2 page fetches, got %d", got)
	}
	if len(res.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(res.Jobs))
	}
	if res.Jobs[0].Location != "Remote" {
		t.Fatalf("expected Remote fallback for remote job, got %q", res.Jobs[0].Location)
	}
	if res.Jobs[1].Location != "Berlin" {
		t.Fatalf("expected Berlin, got %q", res.Jobs[1].Location)
	}
}

func TestArbeitnowSource_LaterPageFailureIsSilent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/job-board-api", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(`{
				"data": [{"slug": "job-one", "company_name": "Acme", "title": "Dev", "description": "d", "remote": false, "url": "u", "tags": [], "job_types": [], "location": "Hamburg", "created_at": 1}],
				"links": {"next": "https://arbeitnow.com/api/job-board-api?page=2"}
			}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewArbeitnowSourceWithBaseURL(server.URL, 5*time.Second)

	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Err != "" {
		t.Fatalf("later page failure must stay silent, got %q", res.Err)
	}
	if len(res.Jobs) != 1 {
		t.Fatalf("expected the first page's job, got %d", len(res.Jobs))
	}
}

func TestArbeitnowSource_FirstPageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := NewArbeitnowSourceWithBaseURL(server.URL, 5*time.Second)

	res, err := s.Scrape(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(res.Jobs))
	}
	if res.Err == "" || !strings.Contains(res.Err, "502") {
		t.Fatalf("expected error mentioning status 502, got %q", res.Err)
	}
}
