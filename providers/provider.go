package providers

import (
	"context"
	"fmt"

	"plant-care-service/models"
)

// Provider abstracts a species identification API. Implementations must be
// concurrency-safe if used across goroutines.
type Provider interface {
	// Name returns a short provider label used in errors, logs and
	// published events (e.g., "plantid", "plantnet").
	Name() string
	// Identify takes an image as base64 (with or without data-URI prefix)
	// and returns candidate species in provider rank order.
	Identify(ctx context.Context, imageBase64 string) ([]models.IdentifiedPlant, error)
}

// HealthAssessor is the optional disease-diagnosis capability. Only
// providers that support it implement this interface.
type HealthAssessor interface {
	AssessHealth(ctx context.Context, imageBase64 string) (*models.PlantHealthReport, error)
}

// Error wraps any provider failure - missing key, transport, or malformed
// response - so the orchestrator can treat them uniformly.
type Error struct {
	Provider string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError wraps cause as a provider failure.
func NewError(provider string, cause error) *Error {
	return &Error{Provider: provider, Cause: cause}
}
