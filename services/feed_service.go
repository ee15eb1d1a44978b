package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"job-board-api/config"
	"job-board-api/models"
	"job-board-api/ws"
)

// feedWindow bounds how many recent posts/jobs from other accounts are
// pulled into one feed page; matchPool bounds the matcher's candidate
// pool by recency to cap cost.
const (
	feedWindow = 50
	matchPool  = 100
)

// FeedItem is one entry in the merged home feed.
type FeedItem struct {
	Kind string       `json:"kind"` // "post" | "job"
	Post *models.Post `json:"post,omitempty"`
	Job  *models.Job  `json:"job,omitempty"`
}

// RecommendationPanels groups the independent matching modes. Each mode
// is capped on its own; an empty mode never blocks the others.
type RecommendationPanels struct {
	BySkills       []MatchResult `json:"by_skills"`
	ByTitle        []models.Job  `json:"by_title"`
	ByLocation     []models.Job  `json:"by_location"`
	Recent         []models.Job  `json:"recent"`
	SimilarApplied []models.Job  `json:"similar_applied"`
	SharedEmployer []models.Job  `json:"shared_employer"`
}

// Feed is the full home payload for one account.
type Feed struct {
	OwnJobs           []models.Job         `json:"own_jobs"`
	Items             []FeedItem           `json:"items"`
	Recommendations   RecommendationPanels `json:"recommendations"`
	ApplicationsCount int64                `json:"applications_count"`
	UnreadCount       int64                `json:"unread_notifications"`
}

type FeedService struct {
	db *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// declaredSkillNames collects the account's skill entries plus desired
// skill tags, deduplicated.
func (s *FeedService) declaredSkillNames(userID uint) []string {
	var profile models.Profile
	if err := s.db.Preload("Skills").Preload("DesiredSkills").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		names = append(names, name)
	}
	for _, skill := range profile.Skills {
		add(skill.Name)
	}
	for _, tag := range profile.DesiredSkills {
		add(tag.Name)
	}
	return names
}

// candidatePool loads the most recent active jobs from other accounts.
// Jobs posted by administrative handles stay out of the pool.
func (s *FeedService) candidatePool(userID uint) []models.Job {
	var jobs []models.Job
	q := s.db.Preload("Skills").
		Where("jobs.user_id <> ? AND jobs.status = ?", userID, models.JobStatusActive)
	if admins := config.AdminHandles(); len(admins) > 0 {
		q = q.Joins("JOIN users ON users.user_id = jobs.user_id").
			Where("users.handle NOT IN ?", admins)
	}
	q.Order("jobs.create_at DESC").
		Limit(matchPool).
		Find(&jobs)
	return jobs
}

// recentPosts loads the feed window of other accounts' posts, again
// skipping administrative handles.
func (s *FeedService) recentPosts(userID uint) []models.Post {
	var posts []models.Post
	q := s.db.Preload("Author").
		Where("posts.user_id <> ?", userID)
	if admins := config.AdminHandles(); len(admins) > 0 {
		q = q.Joins("JOIN users ON users.user_id = posts.user_id").
			Where("users.handle NOT IN ?", admins)
	}
	q.Order("posts.create_at DESC").
		Limit(feedWindow).
		Find(&posts)
	return posts
}

func (s *FeedService) appliedJobs(userID uint) []models.Job {
	var jobs []models.Job
	s.db.Joins("JOIN job_applications ON job_applications.job_id = jobs.job_id").
		Where("job_applications.user_id = ?", userID).
		Find(&jobs)
	return jobs
}

// Compose assembles the home feed: own jobs, a shuffled window of other
// accounts' posts and jobs, and the recommendation panels.
func (s *FeedService) Compose(user *models.User) (*Feed, error) {
	feed := &Feed{}

	if err := s.db.Where("user_id = ?", user.UserID).
		Order("create_at DESC").
		Find(&feed.OwnJobs).Error; err != nil {
		return nil, err
	}

	posts := s.recentPosts(user.UserID)
	pool := s.candidatePool(user.UserID)

	for i := range posts {
		feed.Items = append(feed.Items, FeedItem{Kind: "post", Post: &posts[i]})
	}
	for i := range pool {
		feed.Items = append(feed.Items, FeedItem{Kind: "job", Job: &pool[i]})
	}
	// Break the strict chronological ordering of the merged window.
	rand.Shuffle(len(feed.Items), func(i, j int) {
		feed.Items[i], feed.Items[j] = feed.Items[j], feed.Items[i]
	})

	skills := s.declaredSkillNames(user.UserID)
	applied := s.appliedJobs(user.UserID)

	var profile models.Profile
	_ = s.db.Where("user_id = ?", user.UserID).First(&profile).Error

	now := time.Now()
	feed.Recommendations = RecommendationPanels{
		BySkills:       MatchJobs(skills, pool, 10),
		ByTitle:        MatchByPreferredTitles(profile.PreferredJobTitles, pool),
		ByLocation:     MatchByLocation(profile.PreferredLocation, pool),
		Recent:         MatchByRecency(pool, now),
		SimilarApplied: MatchBySimilarApplied(applied, pool),
		SharedEmployer: MatchBySharedEmployer(applied, pool),
	}

	s.db.Model(&models.JobApplication{}).
		Where("user_id = ?", user.UserID).
		Count(&feed.ApplicationsCount)
	feed.UnreadCount, _ = UnreadCount(s.db, user.UserID)

	return feed, nil
}

// profileMatchesJob reports whether any declared skill or desired tag
// appears in the lowercased job text.
func profileMatchesJob(p *models.Profile, text string) bool {
	for _, skill := range p.Skills {
		if name := strings.ToLower(strings.TrimSpace(skill.Name)); name != "" && strings.Contains(text, name) {
			return true
		}
	}
	for _, tag := range p.DesiredSkills {
		if name := strings.ToLower(strings.TrimSpace(tag.Name)); name != "" && strings.Contains(text, name) {
			return true
		}
	}
	return false
}

// FanOutJobNotifications scans every other profile's declared skills
// against the new job's text and notifies the accounts that match.
func (s *FeedService) FanOutJobNotifications(job *models.Job) {
	var profiles []models.Profile
	if err := s.db.Preload("Skills").Preload("DesiredSkills").
		Where("user_id <> ?", job.UserID).
		Find(&profiles).Error; err != nil {
		return
	}

	text := strings.ToLower(job.Title + " " + job.Description)
	link := fmt.Sprintf("/jobs/%d", job.JobID)

	for i := range profiles {
		if !profileMatchesJob(&profiles[i], text) {
			continue
		}
		NotifyUser(s.db, profiles[i].UserID, models.NotificationJobPost,
			"New job matches your skills",
			fmt.Sprintf("%q was just posted and matches your skills.", job.Title),
			&link, &job.UserID)
	}

	ws.PublishJSON(ws.TopicPopularJobs, "job_posted", map[string]interface{}{
		"job_id": job.JobID,
		"title":  job.Title,
	})
}
