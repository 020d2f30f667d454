// Package session holds the per-user identification state read by the app
// between capture and result screens. All mutations are small synchronous
// reducer-style updates guarded by one mutex, and network results carry a
// generation token so a superseded slow response can never overwrite a
// newer one.
package session

import (
	"sync"

	"plant-care-service/models"
)

// Capture slots. A capture flow writes exactly one slot, chosen by tag.
const (
	SlotNewPlant    = "newPlantImage"
	SlotHealthCheck = "plantHealthCheckImage"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Plants          []models.IdentifiedPlant  `json:"plants"`
	SelectedIndex   int                       `json:"selected_index"`
	Identifying     bool                      `json:"identifying"`
	IdentifyError   string                    `json:"identify_error,omitempty"`
	HealthReport    *models.PlantHealthReport `json:"health_report,omitempty"`
	AssessingHealth bool                      `json:"assessing_health"`
	HealthError     string                    `json:"health_error,omitempty"`
}

// State is the identification session of one user.
type State struct {
	mu sync.Mutex

	plants        []models.IdentifiedPlant
	selectedIndex int
	identifying   bool
	identifyError string
	identifyGen   uint64

	healthReport    *models.PlantHealthReport
	assessingHealth bool
	healthError     string
	healthGen       uint64

	pending map[string]string
}

// NewState returns an empty session.
func NewState() *State {
	return &State{pending: make(map[string]string)}
}

// StartIdentification marks the session busy, clears the previous error
// and returns the generation token the eventual result must present.
func (s *State) StartIdentification() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identifying = true
	s.identifyError = ""
	s.identifyGen++
	return s.identifyGen
}

// SetIdentifiedPlants stores a result list. A stale generation is dropped:
// a newer call has already claimed the session.
func (s *State) SetIdentifiedPlants(gen uint64, plants []models.IdentifiedPlant) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.identifyGen {
		return false
	}
	s.plants = plants
	s.selectedIndex = 0
	s.identifying = false
	s.identifyError = ""
	return true
}

// SetIdentificationError records a failure. The previous result list stays
// visible next to the error.
func (s *State) SetIdentificationError(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.identifyGen {
		return false
	}
	s.identifyError = msg
	s.identifying = false
	return true
}

// SelectPlant moves the selection. Out-of-bounds indexes are rejected.
func (s *State) SelectPlant(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.plants) {
		return false
	}
	s.selectedIndex = index
	return true
}

// StartHealthAssessment is the health-side counterpart of
// StartIdentification, with independent busy/error flags.
func (s *State) StartHealthAssessment() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessingHealth = true
	s.healthError = ""
	s.healthGen++
	return s.healthGen
}

// SetHealthReport stores an assessment result, generation-guarded.
func (s *State) SetHealthReport(gen uint64, report *models.PlantHealthReport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.healthGen {
		return false
	}
	s.healthReport = report
	s.assessingHealth = false
	s.healthError = ""
	return true
}

// SetHealthError records an assessment failure, generation-guarded.
func (s *State) SetHealthError(gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.healthGen {
		return false
	}
	s.healthError = msg
	s.assessingHealth = false
	return true
}

// SetPendingImage stores an in-flight capture into the tagged slot.
func (s *State) SetPendingImage(slot, imageURI string) bool {
	if slot != SlotNewPlant && slot != SlotHealthCheck {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[slot] = imageURI
	return true
}

// ConsumePendingImage returns and clears the tagged slot.
func (s *State) ConsumePendingImage(slot string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uri, ok := s.pending[slot]
	if !ok || uri == "" {
		return "", false
	}
	delete(s.pending, slot)
	return uri, true
}

// Snapshot copies the current state for rendering.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	plants := make([]models.IdentifiedPlant, len(s.plants))
	copy(plants, s.plants)
	return Snapshot{
		Plants:          plants,
		SelectedIndex:   s.selectedIndex,
		Identifying:     s.identifying,
		IdentifyError:   s.identifyError,
		HealthReport:    s.healthReport,
		AssessingHealth: s.assessingHealth,
		HealthError:     s.healthError,
	}
}

// SelectedPlant returns the currently selected candidate, if any.
func (s *State) SelectedPlant() (models.IdentifiedPlant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.plants) == 0 {
		return models.IdentifiedPlant{}, false
	}
	return s.plants[s.selectedIndex], true
}

// Manager hands out one State per user id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Get returns the user's session, creating it on first use.
func (m *Manager) Get(userID string) *State {
	m.mu.RLock()
	st, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return st
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.sessions[userID]; ok {
		return st
	}
	st = NewState()
	m.sessions[userID] = st
	return st
}
