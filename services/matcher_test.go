package services

import (
	"testing"
	"time"

	"job-board-api/models"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestMatchJobsScoresMatchedShareOfDeclaredSkills(t *testing.T) {
	pool := []models.Job{
		{JobID: 1, Title: "Senior Python Developer", Description: "Own our data pipelines.", CreateAt: day(0)},
	}

	results := MatchJobs([]string{"Python", "Haskell"}, pool, 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 50 {
		t.Fatalf("expected score 50, got %d", results[0].Score)
	}
	if len(results[0].MatchedSkills) != 1 || results[0].MatchedSkills[0] != "Python" {
		t.Fatalf("unexpected matched skills: %v", results[0].MatchedSkills)
	}
}

func TestMatchJobsOrdersByScoreThenRecency(t *testing.T) {
	pool := []models.Job{
		{JobID: 1, Title: "Python Engineer", Description: "", CreateAt: day(-5)},
		{JobID: 2, Title: "Python and SQL Engineer", Description: "", CreateAt: day(-9)},
		{JobID: 3, Title: "Python Engineer", Description: "", CreateAt: day(-1)},
	}

	results := MatchJobs([]string{"python", "sql"}, pool, 10)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Job.JobID != 2 {
		t.Fatalf("expected full match first, got job %d", results[0].Job.JobID)
	}
	if results[1].Job.JobID != 3 || results[2].Job.JobID != 1 {
		t.Fatalf("expected recency tiebreak 3 then 1, got %d then %d", results[1].Job.JobID, results[2].Job.JobID)
	}
}

func TestMatchJobsMatchesTagsExactly(t *testing.T) {
	pool := []models.Job{
		{
			JobID:       1,
			Title:       "Backend position",
			Description: "Distributed systems work.",
			CreateAt:    day(0),
			Skills:      []models.SkillTag{{TagID: 1, Name: "Golang"}},
		},
	}

	results := MatchJobs([]string{"golang"}, pool, 10)
	if len(results) != 1 || results[0].Score != 100 {
		t.Fatalf("expected tag match with score 100, got %+v", results)
	}
}

func TestMatchJobsFallsBackToRecencyWithZeroScores(t *testing.T) {
	pool := []models.Job{
		{JobID: 1, Title: "Welder", CreateAt: day(-3)},
		{JobID: 2, Title: "Baker", CreateAt: day(-1)},
		{JobID: 3, Title: "Carpenter", CreateAt: day(-2)},
	}

	for _, skills := range [][]string{nil, {"python"}} {
		results := MatchJobs(skills, pool, 2)
		if len(results) != 2 {
			t.Fatalf("skills %v: expected 2 results, got %d", skills, len(results))
		}
		if results[0].Job.JobID != 2 || results[1].Job.JobID != 3 {
			t.Fatalf("skills %v: expected jobs 2, 3, got %d, %d", skills, results[0].Job.JobID, results[1].Job.JobID)
		}
		for _, r := range results {
			if r.Score != 0 {
				t.Fatalf("skills %v: fallback score must be 0, got %d", skills, r.Score)
			}
		}
	}
}

func TestMatchJobsEmptyPool(t *testing.T) {
	if results := MatchJobs([]string{"python"}, nil, 10); results != nil {
		t.Fatalf("expected nil for empty pool, got %v", results)
	}
}

func TestMatchByPreferredTitlesCapsResults(t *testing.T) {
	var pool []models.Job
	for i := uint(1); i <= 8; i++ {
		pool = append(pool, models.Job{JobID: i, Title: "Data Engineer"})
	}
	pool = append(pool, models.Job{JobID: 100, Title: "Chef"})

	out := MatchByPreferredTitles("data engineer, analyst", pool)
	if len(out) != modeCap {
		t.Fatalf("expected %d results, got %d", modeCap, len(out))
	}
	for _, job := range out {
		if job.Title != "Data Engineer" {
			t.Fatalf("unexpected job in results: %+v", job)
		}
	}

	if out := MatchByPreferredTitles(" , ", pool); out != nil {
		t.Fatalf("expected nil for blank preferences, got %v", out)
	}
}

func TestMatchByLocationIncludesRemote(t *testing.T) {
	pool := []models.Job{
		{JobID: 1, Location: "Berlin"},
		{JobID: 2, Location: "Remote (EU)"},
		{JobID: 3, Location: "Lisbon"},
	}

	out := MatchByLocation("berlin", pool)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].JobID != 1 || out[1].JobID != 2 {
		t.Fatalf("expected jobs 1 and 2, got %+v", out)
	}
}

func TestMatchByRecencyCutoff(t *testing.T) {
	now := day(0)
	pool := []models.Job{
		{JobID: 1, CreateAt: now.Add(-2 * 24 * time.Hour)},
		{JobID: 2, CreateAt: now.Add(-4 * 24 * time.Hour)},
	}

	out := MatchByRecency(pool, now)
	if len(out) != 1 || out[0].JobID != 1 {
		t.Fatalf("expected only job 1, got %+v", out)
	}
}

func TestMatchBySimilarAppliedSharesLeadingKeyword(t *testing.T) {
	applied := []models.Job{
		{JobID: 1, Title: "Frontend Developer"},
	}
	pool := []models.Job{
		{JobID: 1, Title: "Frontend Developer"},
		{JobID: 2, Title: "Frontend Engineer"},
		{JobID: 3, Title: "Backend Engineer"},
	}

	out := MatchBySimilarApplied(applied, pool)
	if len(out) != 1 || out[0].JobID != 2 {
		t.Fatalf("expected only job 2, got %+v", out)
	}
}

func TestMatchBySharedEmployerExcludesAppliedJobs(t *testing.T) {
	applied := []models.Job{
		{JobID: 1, UserID: 40, Title: "Designer"},
	}
	pool := []models.Job{
		{JobID: 1, UserID: 40, Title: "Designer"},
		{JobID: 2, UserID: 40, Title: "Illustrator"},
		{JobID: 3, UserID: 41, Title: "Illustrator"},
	}

	out := MatchBySharedEmployer(applied, pool)
	if len(out) != 1 || out[0].JobID != 2 {
		t.Fatalf("expected only job 2, got %+v", out)
	}
}
