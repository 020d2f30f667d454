package plantid

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"plant-care-service/httpclient"
	"plant-care-service/providers"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL, httpclient.New(5*time.Second)), srv
}

func TestIdentifyNormalizesSuggestions(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Api-Key") != "test-key" {
			t.Errorf("Api-Key = %q", r.Header.Get("Api-Key"))
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		images, ok := body["images"].([]interface{})
		if !ok || len(images) != 1 {
			t.Fatalf("images = %v", body["images"])
		}
		if !strings.HasPrefix(images[0].(string), "data:image/jpeg;base64,") {
			t.Errorf("image not a data URI: %.40s", images[0].(string))
		}
		w.Write([]byte(`{
			"result": {
				"classification": {
					"suggestions": [
						{"name": "Monstera deliciosa", "probability": 0.91,
						 "details": {"common_names": ["Swiss cheese plant"], "taxonomy": {"family": "Araceae"}}},
						{"name": "Monstera adansonii", "probability": 0.06},
						{"name": "Epipremnum aureum", "probability": 0.02,
						 "details": {"common_names": []}}
					]
				}
			}
		}`))
	})

	plants, err := c.Identify(context.Background(), "aW1hZ2U=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plants) != 3 {
		t.Fatalf("got %d candidates, want 3", len(plants))
	}

	top := plants[0]
	if top.ScientificName != "Monstera deliciosa" || top.CommonName != "Swiss cheese plant" || top.Family != "Araceae" {
		t.Errorf("top candidate = %+v", top)
	}
	if top.Probability != 0.91 {
		t.Errorf("probability = %v, want 0.91 verbatim", top.Probability)
	}
	if len(top.Similar) != 2 || top.Similar[0].ScientificName != "Monstera adansonii" {
		t.Errorf("similar = %+v", top.Similar)
	}

	// Missing details fall back: common name to scientific, family to Unknown.
	second := plants[1]
	if second.CommonName != "Monstera adansonii" {
		t.Errorf("common name fallback = %q", second.CommonName)
	}
	if second.Family != "Unknown" {
		t.Errorf("family fallback = %q", second.Family)
	}

	// Order is provider rank order.
	if plants[2].ScientificName != "Epipremnum aureum" {
		t.Errorf("rank order broken: %+v", plants)
	}
}

func TestIdentifyMissingKeyFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, httpclient.New(time.Second))
	_, err := c.Identify(context.Background(), "aW1hZ2U=")
	if err == nil {
		t.Fatal("expected error with no API key")
	}
	var perr *providers.Error
	if !errors.As(err, &perr) || perr.Provider != "plantid" {
		t.Errorf("error = %v", err)
	}
	if called {
		t.Error("network must not be touched when the key is missing")
	}
}

func TestIdentifyNon200(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	})
	_, err := c.Identify(context.Background(), "aW1hZ2U=")
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if !strings.Contains(err.Error(), "402") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestIdentifyMissingClassification(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {}}`))
	})
	_, err := c.Identify(context.Background(), "aW1hZ2U=")
	if err == nil {
		t.Fatal("expected error on response missing classification")
	}
}

func TestAssessHealthBuildsReport(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"result": {
				"is_healthy": {"binary": false, "probability": 0.2},
				"disease": {
					"suggestions": [
						{"name": "powdery mildew", "probability": 0.8,
						 "details": {"description": "White fungal growth.",
						             "treatment": {"biological": ["neem oil"], "prevention": ["improve airflow"]}}},
						{"name": "nutrient deficiency", "probability": 0.3}
					]
				}
			}
		}`))
	})

	report, err := c.AssessHealth(context.Background(), "aW1hZ2U=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.IsHealthy {
		t.Error("expected unhealthy report")
	}
	if len(report.Issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(report.Issues))
	}
	first := report.Issues[0]
	if first.Severity != "high" {
		t.Errorf("severity = %v, want high", first.Severity)
	}
	if len(first.Solutions) != 2 {
		t.Errorf("solutions = %v", first.Solutions)
	}
	if report.OverallHealth != 1-0.8 {
		t.Errorf("overall health = %v, want 0.2", report.OverallHealth)
	}
	if report.Issues[1].Severity != "low" {
		t.Errorf("second severity = %v, want low", report.Issues[1].Severity)
	}
}

func TestAssessHealthHealthyVerdict(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"result": {
				"is_healthy": {"binary": true, "probability": 0.97},
				"disease": {"suggestions": []}
			}
		}`))
	})

	report, err := c.AssessHealth(context.Background(), "aW1hZ2U=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.IsHealthy || report.OverallHealth != 1 || len(report.Issues) != 0 {
		t.Errorf("report = %+v", report)
	}
}
