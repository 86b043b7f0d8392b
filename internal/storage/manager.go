package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lagvtt/backend/internal/models"
)

// ErrNotFound is returned (wrapped) when an id is unknown.
var ErrNotFound = errors.New("not found")

// PlanStore defines the interface for battle plan storage.
type PlanStore interface {
	Save(plan *models.BattlePlan) (*models.PlanInfo, error)
	Get(id string) (*models.PlanInfo, error)
	Load(id string) (*models.BattlePlan, error)
	Update(id string, plan *models.BattlePlan) (*models.PlanInfo, error)
	List(limit int) ([]*models.PlanInfo, error)
	Delete(id string) error
	Rename(id string, newName string) (*models.PlanInfo, error)
}

// planRecord is the on-disk layout of one plan file.
type planRecord struct {
	Info *models.PlanInfo   `json:"info"`
	Plan *models.BattlePlan `json:"plan"`
}

// LocalStore implements PlanStore with one JSON file per plan.
type LocalStore struct {
	mu       sync.RWMutex
	plansDir string
	plans    map[string]*models.PlanInfo
}

// NewLocalStore creates a new LocalStore and indexes any plans already on disk.
func NewLocalStore(plansDir string) (*LocalStore, error) {
	if err := os.MkdirAll(plansDir, 0755); err != nil {
		return nil, fmt.Errorf("creating plans directory: %w", err)
	}

	s := &LocalStore{
		plansDir: plansDir,
		plans:    make(map[string]*models.PlanInfo),
	}
	if err := s.index(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LocalStore) index() error {
	entries, err := os.ReadDir(s.plansDir)
	if err != nil {
		return fmt.Errorf("reading plans directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := s.readRecord(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			fmt.Printf("[PlanStore] Skipping unreadable plan %s: %v\n", e.Name(), err)
			continue
		}
		s.plans[rec.Info.ID] = rec.Info
	}

	fmt.Printf("[PlanStore] Indexed %d plans in %s\n", len(s.plans), s.plansDir)
	return nil
}

func (s *LocalStore) path(id string) string {
	return filepath.Join(s.plansDir, id+".json")
}

func (s *LocalStore) readRecord(id string) (*planRecord, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	var rec planRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	if rec.Info == nil || rec.Plan == nil {
		return nil, fmt.Errorf("decoding plan: incomplete record")
	}
	return &rec, nil
}

// writeRecord writes through a temp file so a crash never leaves half a plan.
func (s *LocalStore) writeRecord(rec *planRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	tmp := s.path(rec.Info.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	if err := os.Rename(tmp, s.path(rec.Info.ID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}

func newInfo(id string, plan *models.BattlePlan) *models.PlanInfo {
	return &models.PlanInfo{
		ID:        id,
		Name:      plan.Name,
		Width:     plan.Width,
		Height:    plan.Height,
		UnitCount: len(plan.Units),
		WallCount: len(plan.Walls),
		SavedAt:   time.Now(),
	}
}

// Save stores a new plan under a fresh id.
func (s *LocalStore) Save(plan *models.BattlePlan) (*models.PlanInfo, error) {
	info := newInfo(uuid.New().String(), plan)
	if err := s.writeRecord(&planRecord{Info: info, Plan: plan}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[info.ID] = info

	return info, nil
}

// Get retrieves plan metadata by ID.
func (s *LocalStore) Get(id string) (*models.PlanInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}

	return info, nil
}

// Load reads the full plan from disk.
func (s *LocalStore) Load(id string) (*models.BattlePlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.plans[id]; !ok {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	rec, err := s.readRecord(id)
	if err != nil {
		return nil, err
	}
	return rec.Plan, nil
}

// Update replaces a stored plan.
func (s *LocalStore) Update(id string, plan *models.BattlePlan) (*models.PlanInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	info := newInfo(id, plan)
	if err := s.writeRecord(&planRecord{Info: info, Plan: plan}); err != nil {
		return nil, err
	}
	s.plans[id] = info

	return info, nil
}

// List returns the most recently saved plans.
func (s *LocalStore) List(limit int) ([]*models.PlanInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*models.PlanInfo
	for _, info := range s.plans {
		list = append(list, info)
	}

	// Sort by SavedAt desc
	sort.Slice(list, func(i, j int) bool {
		return list[i].SavedAt.After(list[j].SavedAt)
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

// Delete removes a plan from storage.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting plan: %w", err)
	}

	delete(s.plans, id)
	return nil
}

// Rename changes the plan's name, which is also the key its script is stored under.
func (s *LocalStore) Rename(id string, newName string) (*models.PlanInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	rec, err := s.readRecord(id)
	if err != nil {
		return nil, err
	}

	rec.Plan.Name = newName
	rec.Info.Name = newName
	rec.Info.SavedAt = time.Now()
	if err := s.writeRecord(rec); err != nil {
		return nil, err
	}
	s.plans[id] = rec.Info

	return rec.Info, nil
}
