// Package identify presents one identification operation over an ordered
// list of providers. The chain tries each provider at most once and stops
// at the first non-empty result; there is no merging and no retry loop.
package identify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"plant-care-service/metrics"
	"plant-care-service/models"
	"plant-care-service/providers"

	"github.com/apex/log"
)

// AggregateError reports that every provider in the chain failed. It keeps
// each underlying cause so nothing is silently swallowed.
type AggregateError struct {
	Causes []*providers.Error
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		parts = append(parts, c.Error())
	}
	return "all identification providers failed: " + strings.Join(parts, "; ")
}

// Providers lists the names of the failed providers in attempt order.
func (e *AggregateError) Providers() []string {
	names := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		names = append(names, c.Provider)
	}
	return names
}

// Service runs the identification fallback chain and health assessments.
type Service struct {
	chain  []providers.Provider
	health providers.HealthAssessor
}

// NewService builds the service from the ordered provider chain. assessor
// may be nil when no configured provider supports health checks.
func NewService(chain []providers.Provider, assessor providers.HealthAssessor) *Service {
	return &Service{chain: chain, health: assessor}
}

// Identify tries each provider in order, once. The first provider that
// returns at least one candidate wins; an empty-but-valid result advances
// the chain the same way a failure does.
func (s *Service) Identify(ctx context.Context, imageBase64 string) ([]models.IdentifiedPlant, string, error) {
	if len(s.chain) == 0 {
		return nil, "", errors.New("no identification providers configured")
	}

	start := time.Now()
	var causes []*providers.Error

	for i, p := range s.chain {
		plants, err := p.Identify(ctx, imageBase64)
		if err != nil {
			var perr *providers.Error
			if !errors.As(err, &perr) {
				perr = providers.NewError(p.Name(), err)
			}
			causes = append(causes, perr)
			metrics.IdentifyAttemptsTotal.WithLabelValues(p.Name(), "error").Inc()
			log.WithFields(log.Fields{
				"provider": p.Name(),
				"attempt":  i + 1,
			}).Warnf("identification attempt failed: %v", perr.Cause)
			continue
		}
		if len(plants) == 0 {
			causes = append(causes, providers.NewError(p.Name(), errors.New("no candidates returned")))
			metrics.IdentifyAttemptsTotal.WithLabelValues(p.Name(), "empty").Inc()
			continue
		}

		metrics.IdentifyAttemptsTotal.WithLabelValues(p.Name(), "success").Inc()
		if i > 0 {
			metrics.IdentifyFallbacksTotal.Inc()
		}
		metrics.IdentifyDurationSeconds.WithLabelValues("success").Observe(time.Since(start).Seconds())
		log.WithFields(log.Fields{
			"provider":   p.Name(),
			"candidates": len(plants),
		}).Info("identification succeeded")
		return plants, p.Name(), nil
	}

	metrics.IdentifyFailuresTotal.Inc()
	metrics.IdentifyDurationSeconds.WithLabelValues("failure").Observe(time.Since(start).Seconds())
	return nil, "", &AggregateError{Causes: causes}
}

// AssessHealth runs a disease diagnosis on the single provider that
// supports it. There is no fallback chain for health checks.
func (s *Service) AssessHealth(ctx context.Context, imageBase64 string) (*models.PlantHealthReport, error) {
	if s.health == nil {
		return nil, errors.New("no health assessment provider configured")
	}

	report, err := s.health.AssessHealth(ctx, imageBase64)
	if err != nil {
		metrics.HealthAssessmentsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("health assessment failed: %w", err)
	}
	metrics.HealthAssessmentsTotal.WithLabelValues("success").Inc()
	return report, nil
}
