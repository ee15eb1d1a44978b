package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"job-board-api/models"
)

// MatchResult pairs a job with its relevance score and the declared
// skills that produced it.
type MatchResult struct {
	Job           models.Job `json:"job"`
	Score         int        `json:"score"`
	MatchedSkills []string   `json:"matched_skills"`
}

// scoreJob matches each skill name case-insensitively as a substring of
// title+description, unioned with exact tag equality.
func scoreJob(skills []string, job *models.Job) (int, []string) {
	if len(skills) == 0 {
		return 0, nil
	}

	text := strings.ToLower(job.Title + " " + job.Description)
	tags := make(map[string]bool, len(job.Skills))
	for _, tag := range job.Skills {
		tags[strings.ToLower(tag.Name)] = true
	}

	var matched []string
	for _, skill := range skills {
		needle := strings.ToLower(strings.TrimSpace(skill))
		if needle == "" {
			continue
		}
		if strings.Contains(text, needle) || tags[needle] {
			matched = append(matched, skill)
		}
	}

	// Declared-skill count floors at 1 so an empty set cannot divide by zero.
	denom := len(skills)
	if denom < 1 {
		denom = 1
	}
	score := int(math.Round(100 * float64(len(matched)) / float64(denom)))
	return score, matched
}

func sortByScoreThenRecency(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Job.CreateAt.After(results[j].Job.CreateAt)
	})
}

func recencyFallback(jobs []models.Job, limit int) []MatchResult {
	sorted := make([]models.Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreateAt.After(sorted[j].CreateAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	results := make([]MatchResult, 0, len(sorted))
	for _, job := range sorted {
		results = append(results, MatchResult{Job: job, Score: 0})
	}
	return results
}

// MatchJobs ranks the candidate pool against the declared skill names.
// The pool is expected to already exclude the account's own jobs. When
// no skill matches anything (or no skills are declared) it falls back
// to the most recent jobs with score 0, so the result is never empty
// while the pool has entries.
func MatchJobs(skills []string, pool []models.Job, limit int) []MatchResult {
	if len(pool) == 0 {
		return nil
	}
	if len(skills) == 0 {
		return recencyFallback(pool, limit)
	}

	var results []MatchResult
	for i := range pool {
		score, matched := scoreJob(skills, &pool[i])
		if score > 0 {
			results = append(results, MatchResult{Job: pool[i], Score: score, MatchedSkills: matched})
		}
	}
	if len(results) == 0 {
		return recencyFallback(pool, limit)
	}

	sortByScoreThenRecency(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// modeCap bounds each secondary matching mode independently; no mode
// blocks another from running.
const modeCap = 5

// MatchByPreferredTitles selects jobs whose title contains any of the
// comma-separated preferred titles.
func MatchByPreferredTitles(preferred string, pool []models.Job) []models.Job {
	var wanted []string
	for _, t := range strings.Split(preferred, ",") {
		if t = strings.TrimSpace(strings.ToLower(t)); t != "" {
			wanted = append(wanted, t)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	var out []models.Job
	for _, job := range pool {
		title := strings.ToLower(job.Title)
		for _, w := range wanted {
			if strings.Contains(title, w) {
				out = append(out, job)
				break
			}
		}
		if len(out) == modeCap {
			break
		}
	}
	return out
}

// MatchByLocation selects jobs in the preferred location or marked remote.
func MatchByLocation(preferredLocation string, pool []models.Job) []models.Job {
	loc := strings.TrimSpace(strings.ToLower(preferredLocation))

	var out []models.Job
	for _, job := range pool {
		jobLoc := strings.ToLower(job.Location)
		if (loc != "" && strings.Contains(jobLoc, loc)) || strings.Contains(jobLoc, "remote") {
			out = append(out, job)
			if len(out) == modeCap {
				break
			}
		}
	}
	return out
}

// MatchByRecency selects jobs posted within the last three days.
func MatchByRecency(pool []models.Job, now time.Time) []models.Job {
	cutoff := now.Add(-3 * 24 * time.Hour)

	var out []models.Job
	for _, job := range pool {
		if job.CreateAt.After(cutoff) {
			out = append(out, job)
			if len(out) == modeCap {
				break
			}
		}
	}
	return out
}

func leadingKeyword(title string) string {
	fields := strings.Fields(strings.ToLower(title))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// MatchBySimilarApplied selects jobs sharing the leading title keyword
// with any job the account already applied to.
func MatchBySimilarApplied(applied []models.Job, pool []models.Job) []models.Job {
	keywords := make(map[string]bool, len(applied))
	appliedIDs := make(map[uint]bool, len(applied))
	for _, job := range applied {
		appliedIDs[job.JobID] = true
		if kw := leadingKeyword(job.Title); kw != "" {
			keywords[kw] = true
		}
	}
	if len(keywords) == 0 {
		return nil
	}

	var out []models.Job
	for _, job := range pool {
		if appliedIDs[job.JobID] {
			continue
		}
		if keywords[leadingKeyword(job.Title)] {
			out = append(out, job)
			if len(out) == modeCap {
				break
			}
		}
	}
	return out
}

// MatchBySharedEmployer selects jobs posted by employers the account
// already applied to.
func MatchBySharedEmployer(applied []models.Job, pool []models.Job) []models.Job {
	employers := make(map[uint]bool, len(applied))
	appliedIDs := make(map[uint]bool, len(applied))
	for _, job := range applied {
		appliedIDs[job.JobID] = true
		employers[job.UserID] = true
	}
	if len(employers) == 0 {
		return nil
	}

	var out []models.Job
	for _, job := range pool {
		if appliedIDs[job.JobID] {
			continue
		}
		if employers[job.UserID] {
			out = append(out, job)
			if len(out) == modeCap {
				break
			}
		}
	}
	return out
}
