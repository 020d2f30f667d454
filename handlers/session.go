package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSession returns the current identification session snapshot
func (h *Handler) GetSession(c *gin.Context) {
	st := h.sessions.Get(userID(c))
	c.JSON(http.StatusOK, st.Snapshot())
}

type selectRequest struct {
	Index int `json:"index"`
}

// SelectPlant moves the session selection to another candidate
func (h *Handler) SelectPlant(c *gin.Context) {
	var req selectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	st := h.sessions.Get(userID(c))
	if !st.SelectPlant(req.Index) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index out of range"})
		return
	}

	c.JSON(http.StatusOK, st.Snapshot())
}

type captureRequest struct {
	Slot  string `json:"slot"`
	Image string `json:"image"`
}

// Capture parks a photo in a tagged session slot for a later identify or
// health-check call.
func (h *Handler) Capture(c *gin.Context) {
	var req captureRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	if req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	st := h.sessions.Get(userID(c))
	if !st.SetPendingImage(req.Slot, req.Image) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown capture slot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slot": req.Slot})
}

// ConsumeCapture returns and clears the photo parked in a slot
func (h *Handler) ConsumeCapture(c *gin.Context) {
	slot := c.Param("slot")

	st := h.sessions.Get(userID(c))
	uri, ok := st.ConsumePendingImage(slot)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending image for slot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slot": slot, "image": uri})
}
