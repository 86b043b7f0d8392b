// mock_storage.go - Mock storage implementations for testing
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lagvtt/backend/internal/models"
	"github.com/lagvtt/backend/internal/storage"
)

// MockPlanStore implements storage.PlanStore in memory
type MockPlanStore struct {
	plans map[string]*models.BattlePlan
	infos map[string]*models.PlanInfo
	mu    sync.RWMutex

	// SaveErr, when set, is returned by Save and Update
	SaveErr error
}

// NewMockPlanStore creates an empty mock plan store
func NewMockPlanStore() *MockPlanStore {
	return &MockPlanStore{
		plans: make(map[string]*models.BattlePlan),
		infos: make(map[string]*models.PlanInfo),
	}
}

func (m *MockPlanStore) Save(plan *models.BattlePlan) (*models.PlanInfo, error) {
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	return m.AddPlan(generateTestID(), plan), nil
}

func (m *MockPlanStore) Get(id string) (*models.PlanInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.infos[id]
	if !ok {
		return nil, notFound(id)
	}
	return info, nil
}

func (m *MockPlanStore) Load(id string) (*models.BattlePlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[id]
	if !ok {
		return nil, notFound(id)
	}
	return plan, nil
}

func (m *MockPlanStore) Update(id string, plan *models.BattlePlan) (*models.PlanInfo, error) {
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}

	m.mu.RLock()
	_, ok := m.infos[id]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return m.AddPlan(id, plan), nil
}

func (m *MockPlanStore) List(limit int) ([]*models.PlanInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*models.PlanInfo, 0, len(m.infos))
	for _, info := range m.infos {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MockPlanStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.infos[id]; !ok {
		return notFound(id)
	}
	delete(m.infos, id)
	delete(m.plans, id)
	return nil
}

func (m *MockPlanStore) Rename(id string, newName string) (*models.PlanInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.infos[id]
	if !ok {
		return nil, notFound(id)
	}
	info.Name = newName
	m.plans[id].Name = newName
	return info, nil
}

// Ensure MockPlanStore implements storage.PlanStore
var _ storage.PlanStore = (*MockPlanStore)(nil)

// Test Helper Methods

// AddPlan stores a plan directly under id
func (m *MockPlanStore) AddPlan(id string, plan *models.BattlePlan) *models.PlanInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := &models.PlanInfo{
		ID:        id,
		Name:      plan.Name,
		Width:     plan.Width,
		Height:    plan.Height,
		UnitCount: len(plan.Units),
		WallCount: len(plan.Walls),
		SavedAt:   time.Now(),
	}
	m.infos[id] = info
	m.plans[id] = plan
	return info
}

// Count returns the number of stored plans
func (m *MockPlanStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plans)
}

// MockLibrary implements storage.UnitLibrary in memory
type MockLibrary struct {
	units  map[string]models.SavedUnit
	images map[string]models.SavedImage
	mu     sync.RWMutex
}

// NewMockLibrary creates an empty mock library
func NewMockLibrary() *MockLibrary {
	return &MockLibrary{
		units:  make(map[string]models.SavedUnit),
		images: make(map[string]models.SavedImage),
	}
}

func (m *MockLibrary) SaveUnit(ctx context.Context, u models.SavedUnit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[u.Label] = u
	return nil
}

func (m *MockLibrary) GetUnit(ctx context.Context, label string) (*models.SavedUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.units[label]
	if !ok {
		return nil, notFound(label)
	}
	return &u, nil
}

func (m *MockLibrary) ListUnits(ctx context.Context) ([]models.SavedUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	units := make([]models.SavedUnit, 0, len(m.units))
	for _, u := range m.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Label < units[j].Label })
	return units, nil
}

func (m *MockLibrary) DeleteUnit(ctx context.Context, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.units[label]; !ok {
		return notFound(label)
	}
	delete(m.units, label)
	return nil
}

func (m *MockLibrary) SaveImage(ctx context.Context, img models.SavedImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[img.Name] = img
	return nil
}

func (m *MockLibrary) ListImages(ctx context.Context) ([]models.SavedImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	images := make([]models.SavedImage, 0, len(m.images))
	for _, img := range m.images {
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Name < images[j].Name })
	return images, nil
}

func (m *MockLibrary) DeleteImage(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.images[name]; !ok {
		return notFound(name)
	}
	delete(m.images, name)
	return nil
}

func (m *MockLibrary) Close() error { return nil }

// Ensure MockLibrary implements storage.UnitLibrary
var _ storage.UnitLibrary = (*MockLibrary)(nil)

var idCounter atomic.Int64

func generateTestID() string {
	return fmt.Sprintf("test-%04d", idCounter.Add(1))
}

func notFound(id string) error {
	return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
}
