package bplan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lagvtt/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// ParsePlanFile reads a plan from a YAML or JSON file. JSON is a subset of
// YAML, so both go through the same decoder.
func ParsePlanFile(filePath string) (*models.BattlePlan, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParsePlanFromReader(file)
}

// ParsePlanFromReader parses a plan from an io.Reader and normalizes it.
func ParsePlanFromReader(r io.Reader) (*models.BattlePlan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var plan models.BattlePlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	if plan.Name == "" {
		return nil, fmt.Errorf("plan has no name")
	}

	return Normalize(&plan), nil
}

// LoadTemplates reads every *.yaml / *.yml plan in dir, keyed by file name
// without extension. A missing directory yields no templates.
func LoadTemplates(dir string) (map[string]*models.BattlePlan, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]*models.BattlePlan{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}

	templates := make(map[string]*models.BattlePlan)
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		plan, err := ParsePlanFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", e.Name(), err)
		}
		templates[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = plan
	}
	return templates, nil
}

// TemplateNames returns the keys of templates in sorted order.
func TemplateNames(templates map[string]*models.BattlePlan) []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
