package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JillPatel28/medical-translator-app/internal/models"
	"github.com/JillPatel28/medical-translator-app/internal/services"
	"github.com/JillPatel28/medical-translator-app/internal/utils"
)

type MessageHandler struct {
	svc services.MessageService
}

func NewMessageHandler(svc services.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type TranslateRequest struct {
	Role string `json:"role"` // defaults to "doctor" when absent
	Text string `json:"text"`
}

type TranslatedMessage struct {
	models.Message
	Translation string `json:"translation"`
}

func (h *MessageHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MessageHandler.Translate", "invalid request body", err))
		return
	}

	row, translation, err := h.svc.Translate(c.Request.Context(), req.Role, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": TranslatedMessage{Message: *row, Translation: translation},
	})
}

func (h *MessageHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"messages": rows,
	})
}

type SearchRequest struct {
	Keyword string `json:"keyword"` // empty matches everything
}

func (h *MessageHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MessageHandler.Search", "invalid request body", err))
		return
	}

	rows, err := h.svc.Search(c.Request.Context(), req.Keyword)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"messages": rows,
	})
}

type SummarizeRequest struct {
	MessageIDs []string `json:"message_ids"`
}

func (h *MessageHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MessageHandler.Summarize", "invalid request body", err))
		return
	}

	summary, err := h.svc.Summarize(c.Request.Context(), req.MessageIDs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"summary": summary,
	})
}
