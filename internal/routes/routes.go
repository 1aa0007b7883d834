package routes

import (
	"snapdev-task/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the web shell API on a new gin router
func SetupRoutes(srv *handlers.Server) *gin.Engine {
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())

	// CORS middleware (the webview page may load from another origin)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SnapDev Task is running",
		})
	})

	ginRouter.GET("/ws", srv.WebSocketHandler)

	api := ginRouter.Group("/api")
	{
		// Whole-board endpoints
		api.GET("/load", srv.Load)
		api.POST("/save", srv.Save)

		// Task endpoints
		api.GET("/tasks", srv.GetTasks)
		api.GET("/tasks/:id", srv.GetTaskByID)
		api.POST("/tasks", srv.CreateTask)
		api.PUT("/tasks/:id", srv.UpdateTask)
		api.PATCH("/tasks/:id/column", srv.MoveTask)
		api.DELETE("/tasks/:id", srv.DeleteTask)

		// Pomodoro endpoints
		api.GET("/pomodoro", srv.GetPomodoro)
		api.POST("/pomodoro/toggle", srv.TogglePomodoro)
		api.POST("/pomodoro/reset", srv.ResetPomodoro)
		api.POST("/pomodoro/skip", srv.SkipPomodoro)
		api.PUT("/pomodoro/settings", srv.UpdatePomodoroSettings)
	}

	return ginRouter
}
