package handlers

import (
	"net/http"
	"time"

	"plant-care-service/store"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func (h *Handler) userPlants(c *gin.Context) (*store.Plants, bool) {
	plants, err := h.stores.Plants(userID(c))
	if err != nil {
		log.Errorf("failed to open plant collection store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open plant collection"})
		return nil, false
	}
	return plants, true
}

// GetMyPlants returns the personal plant collection
func (h *Handler) GetMyPlants(c *gin.Context) {
	plants, ok := h.userPlants(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"plants": plants.Items()})
}

type myPlantAddRequest struct {
	PlantID string `json:"plant_id"`
}

// AddMyPlant adds a catalog plant to the personal collection. Adding a
// plant that is already there is a no-op.
func (h *Handler) AddMyPlant(c *gin.Context) {
	var req myPlantAddRequest
	if err := c.BindJSON(&req); err != nil || req.PlantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plant_id is required"})
		return
	}

	plant, err := h.db.GetPlantByID(req.PlantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	plants, ok := h.userPlants(c)
	if !ok {
		return
	}
	if err := plants.Add(*plant); err != nil {
		log.Errorf("failed to add plant %s to collection: %v", req.PlantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plants": plants.Items()})
}

// RemoveMyPlant removes a plant from the personal collection
func (h *Handler) RemoveMyPlant(c *gin.Context) {
	plants, ok := h.userPlants(c)
	if !ok {
		return
	}
	if err := plants.Remove(c.Param("id")); err != nil {
		log.Errorf("failed to remove plant from collection: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plants": plants.Items()})
}

type myPlantUpdateRequest struct {
	LastWatered   *time.Time `json:"last_watered"`
	HealthScore   *int       `json:"health_score"`
	LightLevel    *string    `json:"light_level"`
	HumidityLevel *string    `json:"humidity_level"`
}

// UpdateMyPlant merges the supplied care fields into one collection entry
func (h *Handler) UpdateMyPlant(c *gin.Context) {
	var req myPlantUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	plants, ok := h.userPlants(c)
	if !ok {
		return
	}

	update := store.PlantUpdate{
		LastWatered:   req.LastWatered,
		HealthScore:   req.HealthScore,
		LightLevel:    req.LightLevel,
		HumidityLevel: req.HumidityLevel,
	}
	if err := plants.Update(c.Param("id"), update); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	plant, _ := plants.Get(c.Param("id"))
	c.JSON(http.StatusOK, plant)
}

// WaterMyPlant records a watering and bumps the health score
func (h *Handler) WaterMyPlant(c *gin.Context) {
	h.careAction(c, func(p *store.Plants, id string) error { return p.Water(id) })
}

// CycleMyPlantLight steps the tracked light level
func (h *Handler) CycleMyPlantLight(c *gin.Context) {
	h.careAction(c, func(p *store.Plants, id string) error { return p.CycleLight(id) })
}

// CycleMyPlantHumidity steps the tracked humidity level
func (h *Handler) CycleMyPlantHumidity(c *gin.Context) {
	h.careAction(c, func(p *store.Plants, id string) error { return p.CycleHumidity(id) })
}

func (h *Handler) careAction(c *gin.Context, action func(*store.Plants, string) error) {
	plants, ok := h.userPlants(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := action(plants, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	plant, _ := plants.Get(id)
	c.JSON(http.StatusOK, plant)
}
