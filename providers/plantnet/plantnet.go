// Package plantnet adapts the PlantNet identification API. Unlike
// Plant.id it uploads the image as a multipart file part and carries its
// key in the query string; it has no health-assessment capability.
package plantnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"plant-care-service/httpclient"
	"plant-care-service/models"
	"plant-care-service/providers"
	"plant-care-service/providers/imageenc"
)

const providerName = "plantnet"

// Client represents a PlantNet API client.
type Client struct {
	apiKey   string
	endpoint string
	project  string
	http     *httpclient.Client
}

// NewClient creates a new PlantNet client.
func NewClient(apiKey, endpoint, project string, http *httpclient.Client) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		project:  project,
		http:     http,
	}
}

func (c *Client) Name() string { return providerName }

type identifyResponse struct {
	Results []struct {
		Score   float64 `json:"score"`
		Species *struct {
			ScientificNameWithoutAuthor string   `json:"scientificNameWithoutAuthor"`
			CommonNames                 []string `json:"commonNames"`
			Family                      *struct {
				ScientificNameWithoutAuthor string `json:"scientificNameWithoutAuthor"`
			} `json:"family"`
		} `json:"species"`
	} `json:"results"`
}

// Identify uploads the decoded image bytes and maps the results array onto
// the normalized candidate shape.
func (c *Client) Identify(ctx context.Context, imageBase64 string) ([]models.IdentifiedPlant, error) {
	if c.apiKey == "" {
		return nil, providers.NewError(providerName, errors.New("API key not configured"))
	}

	imageData, err := imageenc.Decode(imageBase64)
	if err != nil {
		return nil, providers.NewError(providerName, err)
	}

	endpoint := fmt.Sprintf("%s/%s?api-key=%s", c.endpoint, c.project, url.QueryEscape(c.apiKey))
	resp := c.http.PostMultipart(ctx, endpoint, "images", "plant.jpg", imageData, map[string]string{
		"organs": "auto",
	})
	if !resp.OK() {
		return nil, providers.NewError(providerName, fmt.Errorf("API error (status %d): %s", resp.Status, resp.Message))
	}

	var parsed identifyResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, providers.NewError(providerName, fmt.Errorf("failed to parse response: %w", err))
	}
	if parsed.Results == nil {
		return nil, providers.NewError(providerName, errors.New("response missing results array"))
	}

	plants := make([]models.IdentifiedPlant, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.Species == nil {
			return nil, providers.NewError(providerName, errors.New("result missing species"))
		}
		plant := models.IdentifiedPlant{
			ScientificName: r.Species.ScientificNameWithoutAuthor,
			CommonName:     r.Species.ScientificNameWithoutAuthor,
			Family:         "Unknown",
			Probability:    r.Score,
		}
		if len(r.Species.CommonNames) > 0 && r.Species.CommonNames[0] != "" {
			plant.CommonName = r.Species.CommonNames[0]
		}
		if r.Species.Family != nil && r.Species.Family.ScientificNameWithoutAuthor != "" {
			plant.Family = r.Species.Family.ScientificNameWithoutAuthor
		}
		plants = append(plants, plant)
	}
	return plants, nil
}
