package models

import "time"

// Severity buckets a health issue by its reported probability.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SimilarPlant is a lower-ranked species suggestion attached to a candidate.
type SimilarPlant struct {
	ScientificName string  `json:"scientific_name"`
	CommonName     string  `json:"common_name"`
	Probability    float64 `json:"probability"`
}

// IdentifiedPlant is one candidate species match returned by an
// identification provider, in provider rank order.
type IdentifiedPlant struct {
	ScientificName string         `json:"scientific_name"`
	CommonName     string         `json:"common_name"`
	Family         string         `json:"family"`
	Probability    float64        `json:"probability"`
	Similar        []SimilarPlant `json:"similar,omitempty"`
}

// PlantHealthIssue is one detected disease or stress condition.
type PlantHealthIssue struct {
	Name        string   `json:"name"`
	Probability float64  `json:"probability"`
	Description string   `json:"description"`
	Solutions   []string `json:"solutions"`
	Severity    Severity `json:"severity"`
}

// PlantHealthReport is the normalized outcome of a health assessment.
type PlantHealthReport struct {
	IsHealthy     bool               `json:"is_healthy"`
	Issues        []PlantHealthIssue `json:"issues"`
	OverallHealth float64            `json:"overall_health"`
}

// IssueSeverity classifies an issue probability. Thresholds are exclusive:
// 0.7 is medium, 0.4 is low.
func IssueSeverity(probability float64) Severity {
	switch {
	case probability > 0.7:
		return SeverityHigh
	case probability > 0.4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// OverallHealth computes 1 - max(issue probability), or 1 when there are
// no issues.
func OverallHealth(issues []PlantHealthIssue) float64 {
	maxProb := 0.0
	for _, issue := range issues {
		if issue.Probability > maxProb {
			maxProb = issue.Probability
		}
	}
	return 1 - maxProb
}

// NewHealthReport builds a report from normalized issues, deriving
// severity, overall health and the healthy flag in one place.
func NewHealthReport(issues []PlantHealthIssue) *PlantHealthReport {
	for i := range issues {
		issues[i].Severity = IssueSeverity(issues[i].Probability)
		if issues[i].Solutions == nil {
			issues[i].Solutions = []string{}
		}
	}
	return &PlantHealthReport{
		IsHealthy:     len(issues) == 0,
		Issues:        issues,
		OverallHealth: OverallHealth(issues),
	}
}

// Plant is a catalog entity owned by the backend; the service only reads it.
type Plant struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	Description       string  `json:"description"`
	ImageURL          string  `json:"image_url"`
	Price             float64 `json:"price"`
	CategoryID        string  `json:"category_id"`
	StockQuantity     int     `json:"stock_quantity"`
	CareLevel         string  `json:"care_level"`
	LightRequirements string  `json:"light_requirements"`
	WaterFrequency    string  `json:"water_frequency"`
	PetFriendly       bool    `json:"pet_friendly"`
}

// Category is a catalog grouping for plants.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// UserPlant is a catalog plant the user keeps in a personal collection,
// augmented with locally-owned care fields.
type UserPlant struct {
	Plant
	AddedAt       time.Time `json:"added_at"`
	LastWatered   time.Time `json:"last_watered"`
	HealthScore   int       `json:"health_score"`
	LightLevel    string    `json:"light_level"`
	HumidityLevel string    `json:"humidity_level"`
}

// CartItem is a catalog plant plus a quantity of at least 1.
type CartItem struct {
	Plant
	Quantity int `json:"quantity"`
}

// UserProfile is the account record managed by the backend.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one turn of the plant assistant conversation.
type ChatMessage struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentifiedEvent is the message published after a successful
// identification run.
type IdentifiedEvent struct {
	UserID     string            `json:"user_id"`
	Provider   string            `json:"provider"`
	Candidates []IdentifiedPlant `json:"candidates"`
	Timestamp  time.Time         `json:"timestamp"`
}
