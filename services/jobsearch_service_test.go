package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestSearchService(srv *httptest.Server) *JobSearchService {
	return &JobSearchService{
		client:  &http.Client{Timeout: 2 * time.Second},
		baseURL: srv.URL,
	}
}

func TestSearchNormalizesUpstreamResults(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "test-key")

	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.Header.Get("X-RapidAPI-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"job_title":"Go Developer","employer_name":"Acme","job_city":"Berlin","job_country":"DE","job_apply_link":"https://acme.example/jobs/1","job_employment_type":"FULLTIME"},
			{"title":"Backend Engineer","company_name":"Globex","location":"Remote","url":"https://globex.example/jobs/2"}
		]}`))
	}))
	defer srv.Close()

	jobs := newTestSearchService(srv).Search(context.Background(), "golang")

	if gotQuery != "golang" {
		t.Fatalf("expected query golang, got %q", gotQuery)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Go Developer" || jobs[0].EmployerName != "Acme" || jobs[0].City != "Berlin" {
		t.Fatalf("unexpected first job: %+v", jobs[0])
	}
	if jobs[1].Title != "Backend Engineer" || jobs[1].EmployerName != "Globex" || jobs[1].ApplyLink != "https://globex.example/jobs/2" {
		t.Fatalf("alternate field names not picked up: %+v", jobs[1])
	}
}

func TestSearchDefaultsEmptyQuery(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "test-key")

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	newTestSearchService(srv).Search(context.Background(), "")
	if gotQuery != "developer" {
		t.Fatalf("expected default query developer, got %q", gotQuery)
	}
}

func TestSearchDegradesToEmptyOnUpstreamFailure(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "test-key")

	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"rate limited": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		},
	}

	for name, handler := range cases {
		srv := httptest.NewServer(handler)
		jobs := newTestSearchService(srv).Search(context.Background(), "golang")
		srv.Close()

		if jobs == nil {
			t.Fatalf("%s: expected empty slice, got nil", name)
		}
		if len(jobs) != 0 {
			t.Fatalf("%s: expected no jobs, got %d", name, len(jobs))
		}
	}
}

func TestSearchDisabledWithoutAPIKey(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "")

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	jobs := newTestSearchService(srv).Search(context.Background(), "golang")
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
	if hits.Load() != 0 {
		t.Fatalf("upstream must not be called without an api key")
	}
}
