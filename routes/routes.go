package routes

import (
	"github.com/gin-gonic/gin"

	"job-board-api/controllers"
	"job-board-api/middleware"
	"job-board-api/models"
	"job-board-api/ws"
)

func SetupRoutes(router *gin.Engine, hub *ws.Hub) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/signup", controllers.Signup)
			public.POST("/login", controllers.Login)
			public.POST("/contact", controllers.SubmitContact)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Job Board API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile & settings
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/settings", controllers.UpdateSettings)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Skills
			skills := protected.Group("/skills")
			{
				skills.GET("", controllers.GetSkills)
				skills.POST("", controllers.CreateSkill)
				skills.PUT("/:id", controllers.UpdateSkill)
				skills.DELETE("/:id", controllers.DeleteSkill)
			}
			protected.GET("/skill-tags", controllers.GetSkillTags)
			protected.PUT("/desired-skills", controllers.SetDesiredSkills)

			// Home feed & posts
			protected.GET("/feed", controllers.GetFeed)
			posts := protected.Group("/posts")
			{
				posts.GET("", controllers.GetPosts)
				posts.POST("", controllers.CreatePost)
				posts.DELETE("/:id", controllers.DeletePost)
			}

			// Jobs
			jobs := protected.Group("/jobs")
			{
				jobs.GET("", controllers.GetJobs)
				jobs.GET("/search", controllers.SearchExternalJobs)
				jobs.GET("/popular", controllers.GetPopularJobs)
				jobs.GET("/:id", controllers.GetJob)

				// Only employers can post and manage jobs
				jobs.POST("", middleware.RequireRole(models.RoleEmployer), controllers.CreateJob)
				jobs.PUT("/:id", middleware.RequireRole(models.RoleEmployer), controllers.UpdateJob)
				jobs.DELETE("/:id", middleware.RequireRole(models.RoleEmployer), controllers.DeleteJob)

				// Applying and saving are for job seekers
				jobs.POST("/:id/apply", middleware.RequireRole(models.RoleJobSeeker), controllers.ApplyToJob)
				jobs.POST("/:id/save", controllers.SaveJob)
				jobs.DELETE("/:id/save", controllers.UnsaveJob)
			}
			protected.GET("/saved-jobs", controllers.GetSavedJobs)

			// Applications & interview workflow
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.PUT("/:id/status", controllers.UpdateApplicationStatus)
				applications.POST("/:id/interview", controllers.ScheduleInterview)
				applications.GET("/:id/invite.ics", controllers.DownloadInvite)
			}

			// Messaging
			messages := protected.Group("/messages")
			{
				messages.GET("", controllers.GetConversations)
				messages.GET("/:user_id", controllers.GetConversation)
				messages.POST("/:user_id", controllers.SendMessage)
				messages.PUT("/edit/:id", controllers.EditMessage)
				messages.DELETE("/edit/:id", controllers.DeleteMessage)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.GET("/global", controllers.GetGlobalNotifications)

				// Site admins only
				notifications.POST("/global", middleware.RequireAdmin(), controllers.CreateGlobalNotification)
				notifications.PUT("/global/:id", middleware.RequireAdmin(), controllers.UpdateGlobalNotification)
			}

			// Live push channel
			protected.GET("/ws", ws.Handle(hub))
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})
}
