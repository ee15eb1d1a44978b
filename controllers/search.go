package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board-api/services"
)

var jobSearch = services.NewJobSearchService()

// SearchExternalJobs proxies the external job-search API. Results are
// cached per query; all upstream failures degrade to an empty list so
// the page always renders.
func SearchExternalJobs(c *gin.Context) {
	query := c.Query("q")
	jobs := jobSearch.Search(c.Request.Context(), query)

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"query": query,
	})
}

// GetPopularJobs returns the cached popular-jobs feed and broadcasts a
// refresh to connected clients when fresh data arrives.
func GetPopularJobs(c *gin.Context) {
	jobs := jobSearch.RefreshPopularJobs(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
