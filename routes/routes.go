package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/social-server/controllers"
	"github.com/vnkhanh/social-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", middleware.RateLimitLogin(), controllers.Login)
			auth.POST("/google/login", controllers.GoogleLoginHandler)
			auth.POST("/reset-password", controllers.ResetPassword)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthJWT())
		{
			protected.GET("/me", controllers.Me)
			protected.PUT("/me", controllers.UpdateMe)
			protected.GET("/me/attends", controllers.MyAttends)
		}

		users := api.Group("/users")
		users.Use(middleware.AuthJWT())
		{
			users.GET("/search", controllers.SearchUsers)
			users.GET("/:id", controllers.GetUser)
			users.GET("/:id/attends", controllers.UserAttends)
		}

		friends := api.Group("/friends")
		friends.Use(middleware.AuthJWT())
		{
			friends.GET("", controllers.ListFriends)
			friends.GET("/search", controllers.SearchFriends)
			friends.GET("/requests", controllers.ListFriendRequests)
			friends.PUT("/requests/seen", controllers.MarkFriendRequestsSeen)
			friends.POST("/requests", controllers.SendFriendRequest)
			friends.PUT("/requests/:id/respond", controllers.RespondFriendRequest)
			friends.DELETE("/:id", controllers.RemoveFriend)
		}

		events := api.Group("/events")
		events.Use(middleware.AuthJWT())
		{
			events.POST("", controllers.CreateEvent)
			events.GET("", controllers.DiscoverEvents)
			events.GET("/by-friends", controllers.EventsByFriends)
			events.GET("/mine", controllers.MyEvents)
			events.GET("/:id", controllers.GetEvent)
			events.PATCH("/:id", middleware.CheckEventOwner(), controllers.UpdateEvent)
			events.DELETE("/:id", middleware.CheckEventOwner(), controllers.DeleteEvent)
			events.GET("/:id/attenders", controllers.ListAttenders)
			events.POST("/:id/attend", controllers.AttendEvent)
			events.DELETE("/:id/attend", controllers.UnattendEvent)
			events.POST("/:id/like", controllers.LikeEvent)
			events.POST("/:id/dislike", controllers.DislikeEvent)
			events.POST("/:id/comments", controllers.CreateComment)
			events.GET("/:id/comments", controllers.ListComments)
		}

		invitations := api.Group("/invitations")
		invitations.Use(middleware.AuthJWT())
		{
			invitations.POST("", controllers.CreateInvitation)
			invitations.POST("/email", controllers.InviteByEmail)
			invitations.GET("", controllers.ListInvitations)
			invitations.PUT("/seen", controllers.MarkInvitationsSeen)
			invitations.POST("/:id/accept", controllers.AcceptInvitation)
			invitations.POST("/:id/reject", controllers.RejectInvitation)
		}

		messages := api.Group("/messages")
		messages.Use(middleware.AuthJWT())
		{
			messages.GET("", controllers.InboxOverview)
			messages.POST("/:userId", middleware.RateLimitMessageSend(), controllers.SendMessage)
			messages.GET("/:userId", controllers.GetThread)
			messages.PUT("/:userId/seen", controllers.MarkThreadSeen)
			messages.DELETE("/message/:id", controllers.DeleteMessage)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.AuthJWT())
		{
			notifications.GET("", controllers.Notifications)
			notifications.GET("/count", controllers.NotificationsCount)
		}
	}
}
