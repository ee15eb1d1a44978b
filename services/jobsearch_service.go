package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"job-board-api/config"
	"job-board-api/ws"
)

// searchCacheTTL keeps us under the upstream rate limit.
const searchCacheTTL = 5 * time.Minute

// ExternalJob is the slim record the upstream search results are
// normalized to.
type ExternalJob struct {
	Title          string `json:"job_title"`
	EmployerName   string `json:"employer_name"`
	City           string `json:"job_city"`
	Country        string `json:"job_country"`
	ApplyLink      string `json:"job_apply_link"`
	MinSalary      string `json:"job_min_salary"`
	MaxSalary      string `json:"job_max_salary"`
	EmploymentType string `json:"job_employment_type"`
}

type upstreamResponse struct {
	Data []map[string]interface{} `json:"data"`
}

// JobSearchService queries the external job-search API with a Redis
// cache in front. Every failure path degrades to an empty list; the
// caller never sees an error.
type JobSearchService struct {
	client  *http.Client
	baseURL string
}

func NewJobSearchService() *JobSearchService {
	baseURL := os.Getenv("JOBSEARCH_URL")
	if baseURL == "" {
		baseURL = "https://jsearch.p.rapidapi.com/search"
	}
	return &JobSearchService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

func str(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func (s *JobSearchService) fetch(query string) []ExternalJob {
	apiKey := os.Getenv("RAPIDAPI_KEY")
	if apiKey == "" {
		log.Println("RAPIDAPI_KEY not set, job search disabled")
		return []ExternalJob{}
	}

	req, err := http.NewRequest(http.MethodGet, s.baseURL, nil)
	if err != nil {
		return []ExternalJob{}
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("num_pages", "1")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-RapidAPI-Key", apiKey)
	req.Header.Set("X-RapidAPI-Host", os.Getenv("RAPIDAPI_HOST"))

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Job search API error: %v", err)
		return []ExternalJob{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Job search API returned status %d", resp.StatusCode)
		return []ExternalJob{}
	}

	var body upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("Job search API malformed response: %v", err)
		return []ExternalJob{}
	}

	jobs := make([]ExternalJob, 0, len(body.Data))
	for _, item := range body.Data {
		jobs = append(jobs, ExternalJob{
			Title:          str(item, "job_title", "title"),
			EmployerName:   str(item, "employer_name", "company_name"),
			City:           str(item, "job_city", "location"),
			Country:        str(item, "job_country"),
			ApplyLink:      str(item, "job_apply_link", "url"),
			MinSalary:      str(item, "job_min_salary", "min_salary"),
			MaxSalary:      str(item, "job_max_salary", "max_salary"),
			EmploymentType: str(item, "job_employment_type"),
		})
	}
	return jobs
}

// Search returns the cached result for query or fetches and caches it.
func (s *JobSearchService) Search(ctx context.Context, query string) []ExternalJob {
	if query == "" {
		query = "developer"
	}
	cacheKey := "jobs::" + query

	if cached, ok := config.CacheGet(ctx, cacheKey); ok {
		var jobs []ExternalJob
		if err := json.Unmarshal([]byte(cached), &jobs); err == nil {
			return jobs
		}
	}

	jobs := s.fetch(query)

	if encoded, err := json.Marshal(jobs); err == nil {
		config.CacheSet(ctx, cacheKey, string(encoded), searchCacheTTL)
	}
	return jobs
}

// RefreshPopularJobs fetches the popular-jobs feed and broadcasts it to
// connected clients.
func (s *JobSearchService) RefreshPopularJobs(ctx context.Context) []ExternalJob {
	jobs := s.Search(ctx, "popular jobs")
	if len(jobs) > 0 {
		ws.PublishJSON(ws.TopicPopularJobs, "jobs.update", map[string]interface{}{
			"jobs": jobs,
		})
	}
	return jobs
}
