package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"job-board-api/config"
	"job-board-api/services"

	"github.com/joho/godotenv"
)

// Warms the external job-search cache so the first request after a
// deploy does not pay the upstream round trip. Intended to run from
// cron alongside the API server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitCache()

	var queriesRaw string
	flag.StringVar(&queriesRaw, "queries", "developer,popular jobs", "comma separated list of search queries to warm")
	flag.Parse()

	queries := parseQueries(queriesRaw)
	if len(queries) == 0 {
		log.Fatal("no queries to warm")
	}

	search := services.NewJobSearchService()
	ctx := context.Background()

	total := 0
	empty := 0
	for _, query := range queries {
		jobs := search.Search(ctx, query)
		if len(jobs) == 0 {
			empty++
		}
		total += len(jobs)
		fmt.Printf("Query %q: %d jobs cached\n", query, len(jobs))
	}

	fmt.Printf("Queries warmed: %d (empty results: %d), jobs cached: %d\n", len(queries), empty, total)
}

func parseQueries(raw string) []string {
	parts := strings.Split(raw, ",")
	queries := make([]string, 0, len(parts))
	for _, part := range parts {
		query := strings.TrimSpace(part)
		if query != "" {
			queries = append(queries, query)
		}
	}
	return queries
}
