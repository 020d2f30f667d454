package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// GetPlants returns the catalog, optionally filtered by category or a
// search term.
func (h *Handler) GetPlants(c *gin.Context) {
	if term := c.Query("search"); term != "" {
		plants, err := h.db.SearchPlants(term)
		if err != nil {
			log.Errorf("failed to search plants: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search plants"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"plants": plants})
		return
	}

	if categoryID := c.Query("category"); categoryID != "" {
		plants, err := h.db.GetPlantsByCategory(categoryID)
		if err != nil {
			log.Errorf("failed to fetch plants for category %s: %v", categoryID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch plants"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"plants": plants})
		return
	}

	plants, err := h.db.GetPlants()
	if err != nil {
		log.Errorf("failed to fetch plants: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch plants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plants": plants})
}

// GetPlant returns one catalog plant by id
func (h *Handler) GetPlant(c *gin.Context) {
	plant, err := h.db.GetPlantByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plant)
}

// GetCategory returns one catalog category by slug
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.db.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// GetCategories returns all catalog categories
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.db.GetCategories()
	if err != nil {
		log.Errorf("failed to fetch categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
