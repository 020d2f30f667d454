package handlers

import (
	"net/http"

	"plant-care-service/store"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func (h *Handler) userCart(c *gin.Context) (*store.Cart, bool) {
	cart, err := h.stores.Cart(userID(c))
	if err != nil {
		log.Errorf("failed to open cart store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open cart"})
		return nil, false
	}
	return cart, true
}

// GetCart returns the cart contents with the derived totals
func (h *Handler) GetCart(c *gin.Context) {
	cart, ok := h.userCart(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items(),
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

type cartAddRequest struct {
	PlantID string `json:"plant_id"`
}

// AddToCart adds a catalog plant to the cart, incrementing the quantity
// when it is already there.
func (h *Handler) AddToCart(c *gin.Context) {
	var req cartAddRequest
	if err := c.BindJSON(&req); err != nil || req.PlantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plant_id is required"})
		return
	}

	plant, err := h.db.GetPlantByID(req.PlantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	cart, ok := h.userCart(c)
	if !ok {
		return
	}
	if err := cart.Add(*plant); err != nil {
		log.Errorf("failed to add plant %s to cart: %v", req.PlantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "total": cart.Total(), "count": cart.Count()})
}

type cartQuantityRequest struct {
	PlantID  string `json:"plant_id"`
	Quantity int    `json:"quantity"`
}

// UpdateCartQuantity sets the quantity for a cart entry. Zero or less
// removes the entry.
func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	var req cartQuantityRequest
	if err := c.BindJSON(&req); err != nil || req.PlantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plant_id is required"})
		return
	}

	cart, ok := h.userCart(c)
	if !ok {
		return
	}
	if err := cart.UpdateQuantity(req.PlantID, req.Quantity); err != nil {
		log.Errorf("failed to update cart quantity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "total": cart.Total(), "count": cart.Count()})
}

// RemoveFromCart removes one entry from the cart
func (h *Handler) RemoveFromCart(c *gin.Context) {
	cart, ok := h.userCart(c)
	if !ok {
		return
	}
	if err := cart.Remove(c.Param("id")); err != nil {
		log.Errorf("failed to remove plant from cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "total": cart.Total(), "count": cart.Count()})
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	cart, ok := h.userCart(c)
	if !ok {
		return
	}
	if err := cart.Clear(); err != nil {
		log.Errorf("failed to clear cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "total": cart.Total(), "count": cart.Count()})
}
