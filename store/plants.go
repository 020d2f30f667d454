package store

import (
	"fmt"
	"sync"
	"time"

	"plant-care-service/models"
)

// Default care state for a freshly added plant.
const (
	defaultHealthScore = 78
	wateringBonus      = 5
	maxHealthScore     = 100
)

// PlantUpdate is a partial update; nil fields are left unchanged.
type PlantUpdate struct {
	LastWatered   *time.Time `json:"last_watered,omitempty"`
	HealthScore   *int       `json:"health_score,omitempty"`
	LightLevel    *string    `json:"light_level,omitempty"`
	HumidityLevel *string    `json:"humidity_level,omitempty"`
}

// Plants is the persisted personal plant collection: insertion-ordered,
// membership is idempotent.
type Plants struct {
	mu    sync.Mutex
	path  string
	items []models.UserPlant
	now   func() time.Time
}

// NewPlants loads the collection file, if any.
func NewPlants(path string) (*Plants, error) {
	p := &Plants{path: path, now: time.Now}
	if err := readFile(path, &p.items); err != nil {
		return nil, err
	}
	return p, nil
}

// Add inserts the catalog plant with fresh care defaults. Adding a plant
// already in the collection is a no-op.
func (p *Plants) Add(plant models.Plant) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].ID == plant.ID {
			return nil
		}
	}
	now := p.now()
	p.items = append(p.items, models.UserPlant{
		Plant:         plant,
		AddedAt:       now,
		LastWatered:   now,
		HealthScore:   defaultHealthScore,
		LightLevel:    "medium",
		HumidityLevel: "medium",
	})
	return writeFile(p.path, p.items)
}

// Remove deletes the plant if present; absent ids are a no-op.
func (p *Plants) Remove(plantID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].ID == plantID {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return writeFile(p.path, p.items)
		}
	}
	return nil
}

// Update shallow-merges the supplied fields into the plant's care state.
func (p *Plants) Update(plantID string, update PlantUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].ID != plantID {
			continue
		}
		if update.LastWatered != nil {
			p.items[i].LastWatered = *update.LastWatered
		}
		if update.HealthScore != nil {
			p.items[i].HealthScore = *update.HealthScore
		}
		if update.LightLevel != nil {
			p.items[i].LightLevel = *update.LightLevel
		}
		if update.HumidityLevel != nil {
			p.items[i].HumidityLevel = *update.HumidityLevel
		}
		return writeFile(p.path, p.items)
	}
	return fmt.Errorf("plant %s not in collection", plantID)
}

// Water records a watering: last_watered moves to now and the health
// score recovers a little, capped at 100.
func (p *Plants) Water(plantID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].ID != plantID {
			continue
		}
		p.items[i].LastWatered = p.now()
		p.items[i].HealthScore += wateringBonus
		if p.items[i].HealthScore > maxHealthScore {
			p.items[i].HealthScore = maxHealthScore
		}
		return writeFile(p.path, p.items)
	}
	return fmt.Errorf("plant %s not in collection", plantID)
}

// CycleLight advances the light level low -> medium -> high -> low.
func (p *Plants) CycleLight(plantID string) error {
	return p.cycle(plantID, func(up *models.UserPlant) {
		up.LightLevel = nextLevel(up.LightLevel)
	})
}

// CycleHumidity advances the humidity level low -> medium -> high -> low.
func (p *Plants) CycleHumidity(plantID string) error {
	return p.cycle(plantID, func(up *models.UserPlant) {
		up.HumidityLevel = nextLevel(up.HumidityLevel)
	})
}

func (p *Plants) cycle(plantID string, apply func(*models.UserPlant)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].ID == plantID {
			apply(&p.items[i])
			return writeFile(p.path, p.items)
		}
	}
	return fmt.Errorf("plant %s not in collection", plantID)
}

func nextLevel(level string) string {
	switch level {
	case "low":
		return "medium"
	case "medium":
		return "high"
	default:
		return "low"
	}
}

// Items returns a copy in insertion order.
func (p *Plants) Items() []models.UserPlant {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.UserPlant, len(p.items))
	copy(out, p.items)
	return out
}

// Get returns one plant by id.
func (p *Plants) Get(plantID string) (models.UserPlant, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range p.items {
		if item.ID == plantID {
			return item, true
		}
	}
	return models.UserPlant{}, false
}
