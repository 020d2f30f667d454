package handlers

import (
	"context"
	"net/http"
	"time"

	"plant-care-service/database"
	"plant-care-service/identify"
	"plant-care-service/models"
	"plant-care-service/session"
	"plant-care-service/store"

	"github.com/gin-gonic/gin"
)

// AssistantClient generates chat replies for the plant assistant.
type AssistantClient interface {
	SendMessage(ctx context.Context, history []models.ChatMessage, message, imageBase64 string) (string, error)
}

// EventPublisher pushes identification events to the message broker.
type EventPublisher interface {
	Publish(message interface{}) error
}

// Handler wires the HTTP surface to the identification chain, per-user
// sessions, local collections and the catalog database.
type Handler struct {
	identify  *identify.Service
	sessions  *session.Manager
	stores    *store.Manager
	db        *database.Database
	assistant AssistantClient
	publisher EventPublisher
	startTime time.Time
}

// New creates the handler. assistant and publisher may be nil when the
// corresponding integration is not configured.
func New(identifySvc *identify.Service, sessions *session.Manager, stores *store.Manager, db *database.Database, assistant AssistantClient, publisher EventPublisher) *Handler {
	return &Handler{
		identify:  identifySvc,
		sessions:  sessions,
		stores:    stores,
		db:        db,
		assistant: assistant,
		publisher: publisher,
		startTime: time.Now(),
	}
}

// userID returns the authenticated user set by the auth middleware.
func userID(c *gin.Context) string {
	return c.GetString("user_id")
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "plant-care-service",
	})
}

// Status returns basic runtime stats
func (h *Handler) Status(c *gin.Context) {
	events := "disabled"
	if h.publisher != nil {
		events = "connected"
		if p, ok := h.publisher.(interface{ IsConnected() bool }); ok && !p.IsConnected() {
			events = "disconnected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"service": "plant-care-service",
		"status":  "ok",
		"uptime":  time.Since(h.startTime).String(),
		"events":  events,
	})
}
