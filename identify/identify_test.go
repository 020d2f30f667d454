package identify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"plant-care-service/models"
	"plant-care-service/providers"
)

type fakeProvider struct {
	name   string
	plants []models.IdentifiedPlant
	err    error
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Identify(ctx context.Context, image string) ([]models.IdentifiedPlant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.plants, nil
}

type fakeAssessor struct {
	report *models.PlantHealthReport
	err    error
}

func (f *fakeAssessor) AssessHealth(ctx context.Context, image string) (*models.PlantHealthReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func candidates(names ...string) []models.IdentifiedPlant {
	var out []models.IdentifiedPlant
	for _, n := range names {
		out = append(out, models.IdentifiedPlant{ScientificName: n, CommonName: n, Family: "Unknown"})
	}
	return out
}

func TestIdentifyPrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{name: "plantid", plants: candidates("Monstera deliciosa")}
	secondary := &fakeProvider{name: "plantnet", plants: candidates("should not be used")}
	svc := NewService([]providers.Provider{primary, secondary}, nil)

	plants, source, err := svc.Identify(context.Background(), "aW1n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "plantid" {
		t.Errorf("source = %q, want plantid", source)
	}
	if len(plants) != 1 || plants[0].ScientificName != "Monstera deliciosa" {
		t.Errorf("unexpected result: %+v", plants)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestIdentifyFallsBackOnFailure(t *testing.T) {
	primary := &fakeProvider{name: "plantid", err: providers.NewError("plantid", errors.New("API error (status 500)"))}
	secondary := &fakeProvider{name: "plantnet", plants: candidates("Ficus lyrata", "Ficus elastica")}
	svc := NewService([]providers.Provider{primary, secondary}, nil)

	plants, source, err := svc.Identify(context.Background(), "aW1n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "plantnet" {
		t.Errorf("source = %q, want plantnet", source)
	}
	if len(plants) != 2 {
		t.Errorf("got %d candidates, want 2", len(plants))
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
}

func TestIdentifyFallsBackOnEmptyResult(t *testing.T) {
	primary := &fakeProvider{name: "plantid", plants: nil}
	secondary := &fakeProvider{name: "plantnet", plants: candidates("Aloe vera")}
	svc := NewService([]providers.Provider{primary, secondary}, nil)

	plants, source, err := svc.Identify(context.Background(), "aW1n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "plantnet" || len(plants) != 1 {
		t.Errorf("source = %q, candidates = %d", source, len(plants))
	}
}

func TestIdentifyAllFail(t *testing.T) {
	primary := &fakeProvider{name: "plantid", err: providers.NewError("plantid", errors.New("API key not configured"))}
	secondary := &fakeProvider{name: "plantnet", err: providers.NewError("plantnet", errors.New("API error (status 503)"))}
	svc := NewService([]providers.Provider{primary, secondary}, nil)

	_, _, err := svc.Identify(context.Background(), "aW1n")
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}

	var agg *AggregateError
	if !errors.As(err, &agg) {
		t.Fatalf("expected AggregateError, got %T", err)
	}
	names := agg.Providers()
	if len(names) != 2 || names[0] != "plantid" || names[1] != "plantnet" {
		t.Errorf("Providers() = %v", names)
	}
	msg := err.Error()
	for _, want := range []string{"plantid", "plantnet", "API key not configured", "status 503"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message missing %q: %s", want, msg)
		}
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("each provider must be tried exactly once, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestAssessHealth(t *testing.T) {
	report := models.NewHealthReport([]models.PlantHealthIssue{{Name: "leaf spot", Probability: 0.6}})
	svc := NewService(nil, &fakeAssessor{report: report})

	got, err := svc.AssessHealth(context.Background(), "aW1n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsHealthy {
		t.Error("expected unhealthy report")
	}
}

func TestAssessHealthNoFallback(t *testing.T) {
	svc := NewService(nil, &fakeAssessor{err: providers.NewError("plantid", errors.New("boom"))})
	if _, err := svc.AssessHealth(context.Background(), "aW1n"); err == nil {
		t.Fatal("expected error to surface directly")
	}

	svc = NewService(nil, nil)
	if _, err := svc.AssessHealth(context.Background(), "aW1n"); err == nil {
		t.Fatal("expected error when no assessor configured")
	}
}
