package bplan

import (
	"fmt"
	"strings"

	"github.com/lagvtt/backend/internal/models"
)

// Dialect defines the interface for plan-to-script encoders.
type Dialect interface {
	// Name returns the unique name of the dialect.
	Name() string
	// Encode renders the plan as script lines. Joining them is up to the caller.
	Encode(plan *models.BattlePlan) []string
}

// UvarDialect stores the whole plan in one "!uvar Battles" variable.
type UvarDialect struct{}

func (UvarDialect) Name() string { return "uvar" }

func (UvarDialect) Encode(plan *models.BattlePlan) []string {
	return []string{ToUvar(plan)}
}

// BPlanDialect emits one "!bplan" command per map element.
type BPlanDialect struct{}

func (BPlanDialect) Name() string { return "bplan" }

func (BPlanDialect) Encode(plan *models.BattlePlan) []string {
	return ToBPlan(plan)
}

// Registry holds all available dialects.
type Registry struct {
	dialects []Dialect
}

// Global registry instance
var globalRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		dialects: []Dialect{
			UvarDialect{},
			BPlanDialect{},
		},
	}
}

// GetGlobalRegistry returns the singleton registry.
func GetGlobalRegistry() *Registry {
	return globalRegistry
}

// Register adds a new dialect to the registry.
func (r *Registry) Register(d Dialect) {
	r.dialects = append(r.dialects, d)
}

// Names lists the registered dialects in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for _, d := range r.dialects {
		names = append(names, d.Name())
	}
	return names
}

// GetDialectByName returns a dialect by its name.
func (r *Registry) GetDialectByName(name string) (Dialect, error) {
	name = strings.ToLower(name)
	for _, d := range r.dialects {
		if strings.ToLower(d.Name()) == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("dialect not found: %s", name)
}
