// Package plantid adapts the Plant.id REST API. It is the only provider
// with a health-assessment capability, so it backs both the identification
// fallback chain and disease diagnosis.
package plantid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"plant-care-service/httpclient"
	"plant-care-service/models"
	"plant-care-service/providers"
	"plant-care-service/providers/imageenc"
)

const providerName = "plantid"

// Client represents a Plant.id API client.
type Client struct {
	apiKey   string
	endpoint string
	http     *httpclient.Client
}

// NewClient creates a new Plant.id client. The key may be empty; calls
// fail fast before touching the network in that case.
func NewClient(apiKey, endpoint string, http *httpclient.Client) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		http:     http,
	}
}

func (c *Client) Name() string { return providerName }

type identifyRequest struct {
	Images        []string `json:"images"`
	SimilarImages bool     `json:"similar_images"`
}

type suggestion struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Details     *struct {
		CommonNames []string `json:"common_names"`
		Taxonomy    *struct {
			Family string `json:"family"`
		} `json:"taxonomy"`
	} `json:"details"`
}

type identifyResponse struct {
	Result *struct {
		Classification *struct {
			Suggestions []suggestion `json:"suggestions"`
		} `json:"classification"`
	} `json:"result"`
}

// Identify sends the image as base64 embedded in JSON and maps the
// classification suggestions onto the normalized candidate shape.
func (c *Client) Identify(ctx context.Context, imageBase64 string) ([]models.IdentifiedPlant, error) {
	if c.apiKey == "" {
		return nil, providers.NewError(providerName, errors.New("API key not configured"))
	}

	reqBody := identifyRequest{
		Images:        []string{imageenc.ToDataURI(imageBase64)},
		SimilarImages: true,
	}

	resp := c.http.PostJSON(ctx, c.endpoint+"/identification?details=common_names,taxonomy", reqBody, map[string]string{
		"Api-Key": c.apiKey,
	})
	if !resp.OK() {
		return nil, providers.NewError(providerName, fmt.Errorf("API error (status %d): %s", resp.Status, resp.Message))
	}

	var parsed identifyResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, providers.NewError(providerName, fmt.Errorf("failed to parse response: %w", err))
	}
	if parsed.Result == nil || parsed.Result.Classification == nil {
		return nil, providers.NewError(providerName, errors.New("response missing classification result"))
	}

	plants := make([]models.IdentifiedPlant, 0, len(parsed.Result.Classification.Suggestions))
	for _, s := range parsed.Result.Classification.Suggestions {
		plants = append(plants, normalizeSuggestion(s))
	}

	// The top candidate keeps the runner-up species as its similar list,
	// preserving provider rank order.
	if len(plants) > 1 {
		similar := make([]models.SimilarPlant, 0, len(plants)-1)
		for _, p := range plants[1:] {
			similar = append(similar, models.SimilarPlant{
				ScientificName: p.ScientificName,
				CommonName:     p.CommonName,
				Probability:    p.Probability,
			})
		}
		plants[0].Similar = similar
	}
	return plants, nil
}

func normalizeSuggestion(s suggestion) models.IdentifiedPlant {
	plant := models.IdentifiedPlant{
		ScientificName: s.Name,
		CommonName:     s.Name,
		Family:         "Unknown",
		Probability:    s.Probability,
	}
	if s.Details != nil {
		if len(s.Details.CommonNames) > 0 && s.Details.CommonNames[0] != "" {
			plant.CommonName = s.Details.CommonNames[0]
		}
		if s.Details.Taxonomy != nil && s.Details.Taxonomy.Family != "" {
			plant.Family = s.Details.Taxonomy.Family
		}
	}
	return plant
}

type healthResponse struct {
	Result *struct {
		IsHealthy *struct {
			Binary      bool    `json:"binary"`
			Probability float64 `json:"probability"`
		} `json:"is_healthy"`
		Disease *struct {
			Suggestions []struct {
				Name        string  `json:"name"`
				Probability float64 `json:"probability"`
				Details     *struct {
					Description string `json:"description"`
					Treatment   *struct {
						Biological []string `json:"biological"`
						Chemical   []string `json:"chemical"`
						Prevention []string `json:"prevention"`
					} `json:"treatment"`
				} `json:"details"`
			} `json:"suggestions"`
		} `json:"disease"`
	} `json:"result"`
}

// AssessHealth sends the image for disease diagnosis and returns the
// normalized health report with derived severities.
func (c *Client) AssessHealth(ctx context.Context, imageBase64 string) (*models.PlantHealthReport, error) {
	if c.apiKey == "" {
		return nil, providers.NewError(providerName, errors.New("API key not configured"))
	}

	reqBody := identifyRequest{
		Images: []string{imageenc.ToDataURI(imageBase64)},
	}

	resp := c.http.PostJSON(ctx, c.endpoint+"/health_assessment?details=description,treatment", reqBody, map[string]string{
		"Api-Key": c.apiKey,
	})
	if !resp.OK() {
		return nil, providers.NewError(providerName, fmt.Errorf("API error (status %d): %s", resp.Status, resp.Message))
	}

	var parsed healthResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, providers.NewError(providerName, fmt.Errorf("failed to parse response: %w", err))
	}
	if parsed.Result == nil || parsed.Result.Disease == nil {
		return nil, providers.NewError(providerName, errors.New("response missing disease result"))
	}

	// Some response variants carry an explicit healthy verdict; an empty
	// suggestion list means the same thing.
	if parsed.Result.IsHealthy != nil && parsed.Result.IsHealthy.Binary {
		return models.NewHealthReport(nil), nil
	}

	var issues []models.PlantHealthIssue
	for _, s := range parsed.Result.Disease.Suggestions {
		issue := models.PlantHealthIssue{
			Name:        s.Name,
			Probability: s.Probability,
		}
		if s.Details != nil {
			issue.Description = s.Details.Description
			if s.Details.Treatment != nil {
				issue.Solutions = append(issue.Solutions, s.Details.Treatment.Biological...)
				issue.Solutions = append(issue.Solutions, s.Details.Treatment.Chemical...)
				issue.Solutions = append(issue.Solutions, s.Details.Treatment.Prevention...)
			}
		}
		issues = append(issues, issue)
	}
	return models.NewHealthReport(issues), nil
}
