package handlers

import (
	"net/http"

	"plant-care-service/metrics"
	"plant-care-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const chatHistoryLimit = 50

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Image     string `json:"image"`
}

// Chat sends one user message to the plant assistant and returns the
// reply. Both turns are persisted under the chat session.
func (h *Handler) Chat(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat assistant is not configured"})
		return
	}

	var req chatRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = userID(c)
	}

	history, err := h.db.GetChatHistory(req.SessionID, chatHistoryLimit)
	if err != nil {
		log.Errorf("failed to load chat history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat history"})
		return
	}

	reply, err := h.assistant.SendMessage(c.Request.Context(), history, req.Message, req.Image)
	if err != nil {
		metrics.ChatMessagesTotal.WithLabelValues("error").Inc()
		log.Errorf("chat request failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant is unavailable"})
		return
	}

	metrics.ChatMessagesTotal.WithLabelValues("ok").Inc()

	uid := userID(c)
	userMsg := &models.ChatMessage{SessionID: req.SessionID, UserID: uid, Role: "user", Content: req.Message}
	assistantMsg := &models.ChatMessage{SessionID: req.SessionID, UserID: uid, Role: "assistant", Content: reply}
	if err := h.db.SaveChatMessage(userMsg); err != nil {
		log.Warnf("failed to save chat message: %v", err)
	}
	if err := h.db.SaveChatMessage(assistantMsg); err != nil {
		log.Warnf("failed to save chat message: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"reply":      reply,
	})
}

// GetChatHistory returns the saved conversation for a session
func (h *Handler) GetChatHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	messages, err := h.db.GetChatHistory(sessionID, chatHistoryLimit)
	if err != nil {
		log.Errorf("failed to load chat history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// DeleteChatSession removes a saved conversation
func (h *Handler) DeleteChatSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.db.DeleteChatSession(sessionID); err != nil {
		log.Errorf("failed to delete chat session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete chat session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID})
}
