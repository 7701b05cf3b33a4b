package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	arbeitnowDefaultBaseURL = "https://www.arbeitnow.com"
	// arbeitnowMaxPages bounds run time; the feed is newest-first so the
	// first pages carry everything a 6-hourly cadence needs.
	arbeitnowMaxPages = 2
)

// ArbeitnowSource pulls the Arbeitnow job board feed, following pagination up
// to arbeitnowMaxPages.
type ArbeitnowSource struct {
	client  *http.Client
	baseURL string
}

func NewArbeitnowSource(timeout time.Duration) *ArbeitnowSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ArbeitnowSource{
		client:  &http.Client{Timeout: timeout},
		baseURL: arbeitnowDefaultBaseURL,
	}
}

// NewArbeitnowSourceWithBaseURL is used by tests to point at a stub server.
func NewArbeitnowSourceWithBaseURL(baseURL string, timeout time.Duration) *ArbeitnowSource {
	s := NewArbeitnowSource(timeout)
	s.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return s
}

func (s *ArbeitnowSource) Source() string {
	return "arbeitnow"
}

func (s *ArbeitnowSource) DisplayName() string {
	return "Arbeitnow"
}

type arbeitnowResponse struct {
	Data  []arbeitnowJob `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"`
}

func (s *ArbeitnowSource) Scrape(ctx context.Context) (ScrapeResult, error) {
	out := ScrapeResult{Source: s.Source()}

	for page := 1; page <= arbeitnowMaxPages; page++ {
		batch, hasNext, err := s.fetchPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			if page == 1 {
				out.Err = err.Error()
				return out, nil
			}
			// Partial success: keep what earlier pages yielded.
			return out, nil
		}
		out.Jobs = append(out.Jobs, batch...)
		if !hasNext || len(batch) == 0 {
			break
		}
	}

	return out, nil
}

func (s *ArbeitnowSource) fetchPage(ctx context.Context, page int) ([]NormalizedListing, bool, error) {
	url := fmt.Sprintf("%s/api/job-board-api?page=%d", strings.TrimRight(s.baseURL, "/"), page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("arbeitnow request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("arbeitnow responded with status %d", resp.StatusCode)
	}

	body, err := readAllLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, false, fmt.Errorf("arbeitnow read body: %w", err)
	}

	var apiResp arbeitnowResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, false, fmt.Errorf("arbeitnow decode: %w", err)
	}

	jobs := make([]NormalizedListing, 0, len(apiResp.Data))
	for _, j := range apiResp.Data {
		if strings.TrimSpace(j.Slug) == "" {
			continue
		}
		jobs = append(jobs, s.normalize(j))
	}
	return jobs, strings.TrimSpace(apiResp.Links.Next) != "", nil
}

func (s *ArbeitnowSource) normalize(j arbeitnowJob) NormalizedListing {
	location := strings.TrimSpace(j.Location)
	if location == "" && j.Remote {
		location = "Remote"
	}

	tags := make([]string, 0, len(j.Tags)+len(j.JobTypes))
	tags = append(tags, j.Tags...)
	tags = append(tags, j.JobTypes...)

	return NormalizedListing{
		Title:          strings.TrimSpace(j.Title),
		Description:    sanitizeDescription(j.Description),
		Company:        strings.TrimSpace(j.CompanyName),
		Location:       location,
		Tags:           tags,
		ApplicationURL: strings.TrimSpace(j.URL),
		SourceID:       strings.TrimSpace(j.Slug),
		SourceURL:      strings.TrimSpace(j.URL),
		Metadata: map[string]string{
			"remote":     strconv.FormatBool(j.Remote),
			"created_at": strconv.FormatInt(j.CreatedAt, 10),
		},
	}
}
