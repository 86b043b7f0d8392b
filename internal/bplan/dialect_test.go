package bplan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lagvtt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperDialect struct{}

func (upperDialect) Name() string { return "Upper" }

func (upperDialect) Encode(plan *models.BattlePlan) []string {
	return []string{strings.ToUpper(plan.Name)}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"uvar", "bplan"}, r.Names())

	d, err := r.GetDialectByName("UVAR")
	require.NoError(t, err)
	lines := d.Encode(samplePlan())
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], UvarPrefix))

	d, err = r.GetDialectByName("bplan")
	require.NoError(t, err)
	assert.Equal(t, ToBPlan(samplePlan()), d.Encode(samplePlan()))

	_, err = r.GetDialectByName("json")
	assert.Error(t, err)

	r.Register(upperDialect{})
	d, err = r.GetDialectByName("upper")
	require.NoError(t, err)
	assert.Equal(t, []string{"GOBLIN AMBUSH"}, d.Encode(samplePlan()))
}

func TestGlobalRegistry(t *testing.T) {
	assert.Same(t, GetGlobalRegistry(), GetGlobalRegistry())
	_, err := GetGlobalRegistry().GetDialectByName("uvar")
	assert.NoError(t, err)
}

func TestNewPlan(t *testing.T) {
	plan := NewPlan("name")
	assert.Equal(t, "name", plan.Name)
	assert.Equal(t, 5, plan.Width)
	assert.Equal(t, 5, plan.Height)
	assert.Equal(t, float64(1), plan.Zoom)
	assert.NotNil(t, plan.Units)
	assert.NotNil(t, plan.Walls)
	assert.NotNil(t, plan.Loads)
	assert.NotNil(t, plan.Overlays)
}

func TestNormalize(t *testing.T) {
	gs := 0
	in := &models.BattlePlan{
		Name:     "Messy",
		Width:    0,
		Height:   -3,
		GridSize: &gs,
		Units: []models.Unit{
			{Type: "Orc", Colour: "zz", Size: ""},
			{Type: "Elf", Colour: models.ColourGreen, Size: "H"},
		},
		Walls: []models.Wall{{Colour: "zz", Door: "q"}, {Colour: models.ColourBlue, Door: models.DoorSecret}},
		Overlays: []models.Overlay{
			{Type: "blob"},
			{Type: models.OverlayArrow, Colour: "nope"},
		},
	}

	out := Normalize(in)

	assert.Equal(t, 1, out.Width)
	assert.Equal(t, 1, out.Height)
	assert.Equal(t, float64(1), out.Zoom)
	require.NotNil(t, out.GridSize)
	assert.Equal(t, 1, *out.GridSize)
	assert.Equal(t, 0, gs)

	assert.Equal(t, models.Unit{Type: "Orc", Size: "M"}, out.Units[0])
	assert.Equal(t, in.Units[1], out.Units[1])
	assert.Equal(t, models.Wall{}, out.Walls[0])
	assert.Equal(t, in.Walls[1], out.Walls[1])
	assert.Equal(t, []models.Overlay{{Type: models.OverlayArrow}}, out.Overlays)
	assert.NotNil(t, out.Loads)

	// input untouched
	assert.Equal(t, 0, in.Width)
	assert.Equal(t, models.Colour("zz"), in.Units[0].Colour)
	assert.Len(t, in.Overlays, 2)
}

func TestUnitAt(t *testing.T) {
	plan := samplePlan()

	u, ok := UnitAt(plan, 2, 3)
	assert.True(t, ok)
	assert.Equal(t, "Grog", u.Label)

	_, ok = UnitAt(plan, 4, 4)
	assert.False(t, ok)
}

func TestParsePlanFromReader(t *testing.T) {
	yamlPlan := `
name: Crypt
width: 12
height: 9
gridsize: 50
units:
  - label: Skelly
    type: Skeleton
    x: 3
    y: 4
    colour: w
walls:
  - {sx: 0, sy: 0, ex: 0, ey: 8, door: s}
overlays:
  - {type: circle, diameter: 20, sx: 6, sy: 4, topLeftAnchor: true}
`
	plan, err := ParsePlanFromReader(strings.NewReader(yamlPlan))
	require.NoError(t, err)

	assert.Equal(t, "Crypt", plan.Name)
	assert.Equal(t, 12, plan.Width)
	require.NotNil(t, plan.GridSize)
	assert.Equal(t, 50, *plan.GridSize)
	require.Len(t, plan.Units, 1)
	assert.Equal(t, "M", plan.Units[0].Size)
	assert.Equal(t, models.ColourWhite, plan.Units[0].Colour)
	assert.Equal(t, models.DoorSecret, plan.Walls[0].Door)
	assert.True(t, plan.Overlays[0].TopLeftAnchor)
	assert.Equal(t, float64(1), plan.Zoom)

	jsonPlan := `{"name":"J","width":2,"height":3,"zoom":2,"units":[],"walls":[]}`
	plan, err = ParsePlanFromReader(strings.NewReader(jsonPlan))
	require.NoError(t, err)
	assert.Equal(t, float64(2), plan.Zoom)
	assert.Nil(t, plan.GridSize)

	_, err = ParsePlanFromReader(strings.NewReader("width: 3"))
	assert.Error(t, err)

	_, err = ParsePlanFromReader(strings.NewReader("name: [unclosed"))
	assert.Error(t, err)
}

func TestLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crypt.yaml"), []byte("name: Crypt\nwidth: 4\nheight: 4\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arena.yml"), []byte("name: Arena\nwidth: 8\nheight: 8\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	templates, err := LoadTemplates(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"arena", "crypt"}, TemplateNames(templates))
	assert.Equal(t, "Crypt", templates["crypt"].Name)

	templates, err = LoadTemplates(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, templates)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("width: 1\n"), 0644))
	_, err = LoadTemplates(dir)
	assert.Error(t, err)
}
