package routes

import (
	"net/http"
	"time"

	"lunchbox/handlers"
	"lunchbox/middleware"
	"lunchbox/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes registers the per-user notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListNotifications)
		api.GET("/count", hb.CountNotifications)
		api.PATCH("/read-all", hb.MarkAllRead)
		api.PATCH("/:id/read", hb.MarkRead)
		api.GET("/preferences", hb.GetPreferences)
		api.PUT("/preferences", hb.SetPreferences)

		// Role is enforced again in the service.
		api.POST("", middleware.RequireAdmin(), hb.CreateNotification)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
		adminGroup.GET("/settings", hb.GetSettings)
		adminGroup.PUT("/settings", hb.UpdateSettings)
	}
}

// RegisterInternalRoutes registers trusted service-to-service endpoints.
func RegisterInternalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	internal := r.Group("/internal")
	{
		internal.Use(middleware.InternalTokenMiddleware(hb.InternalToken))
		internal.POST("/scheduler/tick", hb.SchedulerTick)
		internal.POST("/notifications/purge", hb.PurgeNotifications)
		internal.POST("/events", hb.HandleEvent)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "lunchbox notifications"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterInternalRoutes(r, hb)
}
