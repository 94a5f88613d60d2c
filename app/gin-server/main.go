package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/JillPatel28/medical-translator-app/config"
	"github.com/JillPatel28/medical-translator-app/internal/api/handlers"
	"github.com/JillPatel28/medical-translator-app/internal/api/middleware"
	"github.com/JillPatel28/medical-translator-app/internal/api/routes"
	"github.com/JillPatel28/medical-translator-app/internal/logger"
	"github.com/JillPatel28/medical-translator-app/internal/models"
	"github.com/JillPatel28/medical-translator-app/internal/providers/ai"
	"github.com/JillPatel28/medical-translator-app/internal/repositories/memory"
	pgrepo "github.com/JillPatel28/medical-translator-app/internal/repositories/postgres"
	"github.com/JillPatel28/medical-translator-app/internal/services"
	"github.com/JillPatel28/medical-translator-app/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	// Record store: Postgres when configured, in-memory otherwise.
	var (
		messages pgrepo.MessageRepository
		audio    pgrepo.AudioMessageRepository
	)
	if os.Getenv("POSTGRES_URI") != "" {
		if err := config.InitPostgres(); err != nil {
			log.WithError(err).Fatal("PostgreSQL init error")
		}
		if err := config.PostgresDB.AutoMigrate(&models.Message{}, &models.AudioMessage{}); err != nil {
			log.WithError(err).Fatal("PostgreSQL migrate error")
		}
		messages = pgrepo.NewMessageRepo(config.PostgresDB)
		audio = pgrepo.NewAudioMessageRepo(config.PostgresDB)
		log.Info("PostgreSQL connected")
	} else {
		messages = memory.NewMessageRepo()
		audio = memory.NewAudioMessageRepo()
		log.Warn("POSTGRES_URI not set, using in-memory store")
	}

	provider, err := ai.NewOpenAI(ai.OpenAIConfig{
		APIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:       os.Getenv("OPENAI_CHAT_MODEL"),
		TranscribeModel: os.Getenv("OPENAI_TRANSCRIBE_MODEL"),
	})
	if err != nil {
		log.WithError(err).Fatal("OpenAI init error")
	}

	// Audio storage: GCS when a bucket is configured, local disk otherwise.
	var uploader storage.Uploader
	if bucket := os.Getenv("AUDIO_BUCKET"); bucket != "" {
		gcs, err := storage.NewGCSUploader(context.Background(), bucket)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		defer gcs.Close()
		uploader = gcs
		log.WithField("bucket", bucket).Info("GCS audio storage ready")
	} else {
		dir := os.Getenv("MEDIA_DIR")
		if dir == "" {
			dir = "media"
		}
		uploader = storage.NewLocalUploader(dir)
		log.WithField("dir", dir).Info("local audio storage ready")
	}

	messageSvc := services.NewMessageService(messages, provider)
	audioSvc := services.NewAudioService(audio, messages, provider, uploader)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Message: handlers.NewMessageHandler(messageSvc),
		Audio:   handlers.NewAudioHandler(audioSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
