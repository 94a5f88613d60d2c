package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JillPatel28/medical-translator-app/internal/api/handlers"
)

type Deps struct {
	Message *handlers.MessageHandler
	Audio   *handlers.AudioHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Doctor-Patient Translation API",
			"version": "1.0",
			"endpoints": gin.H{
				"translate":      "/api/translate/",
				"audio":          "/api/audio/",
				"summarize":      "/api/summarize/",
				"messages":       "/api/messages/",
				"audio-messages": "/api/audio-messages/",
				"search":         "/api/search/",
			},
		})
	})

	api.POST("/translate/", d.Message.Translate)
	api.POST("/audio/", d.Audio.Upload)
	api.GET("/messages/", d.Message.List)
	api.GET("/audio-messages/", d.Audio.List)
	api.POST("/search/", d.Message.Search)
	api.POST("/summarize/", d.Message.Summarize)
}
