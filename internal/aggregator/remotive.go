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

const remotiveDefaultBaseURL = "https://remotive.com"

// RemotiveSource pulls the full remote-jobs feed from the Remotive public API
// in a single request.
type RemotiveSource struct {
	client  *http.Client
	baseURL string
}

func NewRemotiveSource(timeout time.Duration) *RemotiveSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemotiveSource{
		client:  &http.Client{Timeout: timeout},
		baseURL: remotiveDefaultBaseURL,
	}
}

// NewRemotiveSourceWithBaseURL is used by tests to point at a stub server.
func NewRemotiveSourceWithBaseURL(baseURL string, timeout time.Duration) *RemotiveSource {
	s := NewRemotiveSource(timeout)
	s.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return s
}

func (s *RemotiveSource) Source() string {
	return "remotive"
}

func (s *RemotiveSource) DisplayName() string {
	return "Remotive"
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID                        int      `json:"id"`
	URL                       string   `json:"url"`
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	Category                  string   `json:"category"`
	Tags                      []string `json:"tags"`
	JobType                   string   `json:"job_type"`
	PublicationDate           string   `json:"publication_date"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	Salary                    string   `json:"salary"`
	Description               string   `json:"description"`
}

func (s *RemotiveSource) Scrape(ctx context.Context) (ScrapeResult, error) {
	out := ScrapeResult{Source: s.Source()}

	url := strings.TrimRight(s.baseURL, "/") + "/api/remote-jobs"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		out.Err = fmt.Sprintf("remotive request failed: %v", err)
		return out, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		out.Err = fmt.Sprintf("remotive responded with status %d", resp.StatusCode)
		return out, nil
	}

	body, err := readAllLimit(resp.Body, maxResponseBytes)
	if err != nil {
		out.Err = fmt.Sprintf("remotive read body: %v", err)
		return out, nil
	}

	var apiResp remotiveResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		out.Err = fmt.Sprintf("remotive decode: %v", err)
		return out, nil
	}

	out.Jobs = make([]NormalizedListing, 0, len(apiResp.Jobs))
	for _, j := range apiResp.Jobs {
		if j.ID == 0 {
			continue
		}
		out.Jobs = append(out.Jobs, s.normalize(j))
	}
	return out, nil
}

func (s *RemotiveSource) normalize(j remotiveJob) NormalizedListing {
	location := strings.TrimSpace(j.CandidateRequiredLocation)
	if location == "" {
		// Remotive only lists remote positions.
		location = "Remote"
	}

	tags := make([]string, 0, len(j.Tags)+2)
	tags = append(tags, j.Tags...)
	if c := strings.TrimSpace(j.Category); c != "" {
		tags = append(tags, c)
	}
	if t := strings.TrimSpace(j.JobType); t != "" {
		tags = append(tags, t)
	}

	return NormalizedListing{
		Title:          strings.TrimSpace(j.Title),
		Description:    sanitizeDescription(j.Description),
		Company:        strings.TrimSpace(j.CompanyName),
		Location:       location,
		Salary:         strings.TrimSpace(j.Salary),
		Tags:           tags,
		ApplicationURL: strings.TrimSpace(j.URL),
		SourceID:       strconv.Itoa(j.ID),
		SourceURL:      strings.TrimSpace(j.URL),
		Metadata: map[string]string{
			"category":         strings.TrimSpace(j.Category),
			"job_type":         strings.TrimSpace(j.JobType),
			"publication_date": strings.TrimSpace(j.PublicationDate),
		},
	}
}
