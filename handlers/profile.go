package handlers

import (
	"net/http"

	"plant-care-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's account record
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.db.GetUserProfile(userID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

type profileUpdateRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfile creates or refreshes the account record for the
// authenticated user.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	profile := &models.UserProfile{
		ID:        userID(c),
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	}
	if err := h.db.UpsertUserProfile(profile); err != nil {
		log.Errorf("failed to upsert profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

type avatarUpdateRequest struct {
	AvatarURL string `json:"avatar_url"`
}

// UpdateAvatar changes only the avatar URL on an existing profile
func (h *Handler) UpdateAvatar(c *gin.Context) {
	var req avatarUpdateRequest
	if err := c.BindJSON(&req); err != nil || req.AvatarURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar_url is required"})
		return
	}

	if err := h.db.UpdateUserAvatar(userID(c), req.AvatarURL); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": req.AvatarURL})
}
