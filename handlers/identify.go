package handlers

import (
	"net/http"
	"time"

	"plant-care-service/models"
	"plant-care-service/session"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

type identifyRequest struct {
	Image string `json:"image"`
}

// Identify runs the provider chain for the submitted photo, updates the
// user's session and publishes an identification event.
func (h *Handler) Identify(c *gin.Context) {
	var req identifyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	uid := userID(c)
	st := h.sessions.Get(uid)

	// A capture flow may have parked the photo in the session already.
	if req.Image == "" {
		if uri, ok := st.ConsumePendingImage(session.SlotNewPlant); ok {
			req.Image = uri
		}
	}
	if req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	gen := st.StartIdentification()

	candidates, provider, err := h.identify.Identify(c.Request.Context(), req.Image)
	if err != nil {
		st.SetIdentificationError(gen, err.Error())
		log.WithField("user_id", uid).Errorf("identification failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if !st.SetIdentifiedPlants(gen, candidates) {
		// A newer request claimed the session while this one ran.
		c.JSON(http.StatusConflict, gin.H{"error": "identification superseded by a newer request"})
		return
	}

	if h.publisher != nil {
		event := models.IdentifiedEvent{
			UserID:     uid,
			Provider:   provider,
			Candidates: candidates,
			Timestamp:  time.Now(),
		}
		if err := h.publisher.Publish(event); err != nil {
			log.Warnf("failed to publish identification event: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":   provider,
		"candidates": candidates,
	})
}

// AssessHealth runs the single-provider health assessment and stores the
// report into the user's session.
func (h *Handler) AssessHealth(c *gin.Context) {
	var req identifyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	uid := userID(c)
	st := h.sessions.Get(uid)

	if req.Image == "" {
		if uri, ok := st.ConsumePendingImage(session.SlotHealthCheck); ok {
			req.Image = uri
		}
	}
	if req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	gen := st.StartHealthAssessment()

	report, err := h.identify.AssessHealth(c.Request.Context(), req.Image)
	if err != nil {
		st.SetHealthError(gen, err.Error())
		log.WithField("user_id", uid).Errorf("health assessment failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if !st.SetHealthReport(gen, report) {
		c.JSON(http.StatusConflict, gin.H{"error": "assessment superseded by a newer request"})
		return
	}

	c.JSON(http.StatusOK, report)
}
