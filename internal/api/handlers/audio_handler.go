package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JillPatel28/medical-translator-app/internal/services"
	"github.com/JillPatel28/medical-translator-app/internal/utils"
)

// Whisper rejects anything larger anyway.
const maxAudioBytes = 25 << 20

type AudioHandler struct {
	svc services.AudioService
}

func NewAudioHandler(svc services.AudioService) *AudioHandler {
	return &AudioHandler{svc: svc}
}

func (h *AudioHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("audio")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AudioHandler.Upload", "Audio file is required", err))
		return
	}
	if fh.Size <= 0 || fh.Size > maxAudioBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AudioHandler.Upload", "audio file too large (max 25MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AudioHandler.Upload", "failed to open upload", err))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AudioHandler.Upload", "failed to read upload", err))
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	msg, err := h.svc.Process(c.Request.Context(), c.PostForm("role"), fh.Filename, contentType, audio)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": msg,
	})
}

func (h *AudioHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"audio_messages": rows,
	})
}
