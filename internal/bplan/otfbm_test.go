package bplan

import (
	"strings"
	"testing"

	"github.com/lagvtt/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestOTFBMURLHeader(t *testing.T) {
	tests := []struct {
		name string
		plan models.BattlePlan
		want string
	}{
		{
			name: "size only",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 1},
			want: "https://otfbm.io/10x8",
		},
		{
			name: "start cell",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 1, StartX: 2, StartY: 1},
			want: "https://otfbm.io/C2:10x8",
		},
		{
			name: "start row only",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 1, StartY: 4},
			want: "https://otfbm.io/A5:10x8",
		},
		{
			name: "zoom",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 2},
			want: "https://otfbm.io/10x8/@2",
		},
		{
			name: "fractional zoom",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 1.5},
			want: "https://otfbm.io/10x8/@1.5",
		},
		{
			name: "unset zoom",
			plan: models.BattlePlan{Width: 10, Height: 8},
			want: "https://otfbm.io/10x8",
		},
		{
			name: "grid size",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 1, GridSize: intPtr(50)},
			want: "https://otfbm.io/10x8/@c50",
		},
		{
			name: "explicit default grid size",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 1, GridSize: intPtr(40)},
			want: "https://otfbm.io/10x8/@c40",
		},
		{
			name: "background offset",
			plan: models.BattlePlan{Width: 10, Height: 8, Zoom: 1, BGX: 10},
			want: "https://otfbm.io/10x8/@o10:0",
		},
		{
			name: "everything",
			plan: models.BattlePlan{Width: 4, Height: 4, Zoom: 3, StartX: 1, StartY: 1, GridSize: intPtr(30), BGX: -5, BGY: 7},
			want: "https://otfbm.io/B2:4x4/@3/@c30/@o-5:7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OTFBMURL(&tt.plan, URLOptions{Scale: 5}))
		})
	}
}

func TestOTFBMURLWallStateCarry(t *testing.T) {
	plan := &models.BattlePlan{
		Width:  10,
		Height: 8,
		Zoom:   1,
		Walls: []models.Wall{
			{SX: 0, SY: 0, EX: 1, EY: 0},
			{SX: 1, SY: 0, EX: 2, EY: 0, Colour: models.ColourBlue},
			{SX: 2, SY: 0, EX: 3, EY: 0, Colour: models.ColourBlue},
		},
	}

	url := OTFBMURL(plan, URLOptions{Scale: 5})
	assert.Equal(t, "https://otfbm.io/10x8/_A1B1_-cbB1C1D1", url)

	segment := strings.TrimPrefix(url, "https://otfbm.io/10x8/")
	assert.Equal(t, 1, strings.Count(segment, "-c"))
	assert.NotContains(t, segment, "_C1")
}

func TestOTFBMURLWalls(t *testing.T) {
	tests := []struct {
		name  string
		walls []models.Wall
		want  string
	}{
		{
			name:  "door and gap",
			walls: []models.Wall{{SX: 0, SY: 0, EX: 2, EY: 0, Door: models.DoorClosed}, {SX: 5, SY: 5, EX: 6, EY: 5}},
			want:  "/_A1-dC1_F6G6",
		},
		{
			name:  "chain continues",
			walls: []models.Wall{{SX: 0, SY: 0, EX: 0, EY: 3}, {SX: 0, SY: 3, EX: 3, EY: 3}},
			want:  "/_A1A4D4",
		},
		{
			name:  "explicit black matches initial colour",
			walls: []models.Wall{{SX: 0, SY: 0, EX: 1, EY: 0, Colour: models.ColourBlack}},
			want:  "/_A1B1",
		},
		{
			name: "colour carries to uncoloured wall",
			walls: []models.Wall{
				{SX: 0, SY: 0, EX: 1, EY: 0, Colour: models.ColourRed},
				{SX: 4, SY: 4, EX: 5, EY: 4},
				{SX: 5, SY: 4, EX: 6, EY: 4, Colour: models.ColourBlack},
			},
			want: "/_-crA1B1_E5F5_-ckF5G5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &models.BattlePlan{Width: 10, Height: 8, Zoom: 1, Walls: tt.walls}
			assert.Equal(t, "https://otfbm.io/10x8"+tt.want, OTFBMURL(plan, URLOptions{Scale: 5}))
		})
	}
}

func TestOTFBMURLUnits(t *testing.T) {
	tests := []struct {
		name string
		unit models.Unit
		want string
	}{
		{"defaults", models.Unit{Size: "M"}, "/A1r"},
		{"size and colour", models.Unit{X: 2, Y: 3, Size: "L", Colour: models.ColourGreen}, "/C4Lg"},
		{"label", models.Unit{X: 1, Size: "M", Label: "Grog"}, "/B1r-Grog"},
		{"token", models.Unit{Size: "S", Colour: models.ColourPink, Token: "abc"}, "/A1Spk~abc"},
		{"token without face", models.Unit{X: 2, Y: 3, Size: "L", Colour: models.ColourGreen, Label: "Grog", Token: "abc", NoFace: true}, "/C4Lg-Grog~abc~"},
		{"noface without token", models.Unit{Size: "M", NoFace: true}, "/A1r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &models.BattlePlan{Width: 5, Height: 5, Zoom: 1, Units: []models.Unit{tt.unit}}
			assert.Equal(t, "https://otfbm.io/5x5"+tt.want, OTFBMURL(plan, URLOptions{Scale: 5}))
		})
	}
}

func TestOTFBMURLOverlays(t *testing.T) {
	tests := []struct {
		name    string
		overlay models.Overlay
		want    string
	}{
		{
			name:    "arrow under",
			overlay: models.Overlay{Type: models.OverlayArrow, Under: true, Colour: models.ColourRed, SX: 0, SY: 0, EX: 2, EY: 2},
			want:    "/*uarA1C3",
		},
		{
			name:    "circle top left",
			overlay: models.Overlay{Type: models.OverlayCircle, TopLeftAnchor: true, Diameter: 20, Colour: models.ColourBlue, SX: 1, SY: 1},
			want:    "/*ct160bB2",
		},
		{
			name:    "circle centred",
			overlay: models.Overlay{Type: models.OverlayCircle, Diameter: 10, SX: 1, SY: 1},
			want:    "/*c80B2",
		},
		{
			name:    "cone",
			overlay: models.Overlay{Type: models.OverlayCone, Length: 15, SX: 0, SY: 0, EX: 3, EY: 0},
			want:    "/*t120A1D1",
		},
		{
			name:    "line with width",
			overlay: models.Overlay{Type: models.OverlayLine, Length: 30, Width: 5, Colour: models.ColourBlack, SX: 1, SY: 1, EX: 4, EY: 1},
			want:    "/*l240,40kB2E2",
		},
		{
			name:    "line without width",
			overlay: models.Overlay{Type: models.OverlayLine, Length: 30, SX: 1, SY: 1, EX: 4, EY: 1},
			want:    "/*l240B2E2",
		},
		{
			name:    "square",
			overlay: models.Overlay{Type: models.OverlaySquare, Size: 10, SX: 0, SY: 0, EX: 1, EY: 1},
			want:    "/*s80A1B2",
		},
		{
			name:    "square top left",
			overlay: models.Overlay{Type: models.OverlaySquare, TopLeftAnchor: true, Size: 10, SX: 0, SY: 0, EX: 1, EY: 1},
			want:    "/*st80A1",
		},
		{
			name:    "unknown type",
			overlay: models.Overlay{Type: "blob", SX: 0, SY: 0},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &models.BattlePlan{Width: 5, Height: 5, Zoom: 1, Overlays: []models.Overlay{tt.overlay}}
			assert.Equal(t, "https://otfbm.io/5x5"+tt.want, OTFBMURL(plan, URLOptions{Scale: 5}))
		})
	}
}

func TestOTFBMURLOverlayScale(t *testing.T) {
	plan := &models.BattlePlan{
		Width: 5, Height: 5, Zoom: 1, GridSize: intPtr(50),
		Overlays: []models.Overlay{{Type: models.OverlayCircle, Diameter: 3, SX: 0, SY: 0}},
	}

	assert.Equal(t, "https://otfbm.io/5x5/@c50/*c30A1", OTFBMURL(plan, URLOptions{Scale: 5}))
	assert.Equal(t, "https://otfbm.io/5x5/@c50/*c150A1", OTFBMURL(plan, URLOptions{}))
	assert.Equal(t, "https://otfbm.io/5x5/@c50/*c37.5A1", OTFBMURL(plan, URLOptions{Scale: 4}))
}

func TestOTFBMURLQuery(t *testing.T) {
	plan := &models.BattlePlan{Width: 5, Height: 5, Zoom: 1, BG: "http://bg.png", Loads: []string{"a", "b"}}
	assert.Equal(t, "https://otfbm.io/5x5?bg=http://bg.png&load=a&load=b", OTFBMURL(plan, URLOptions{Scale: 5}))

	plan = &models.BattlePlan{Width: 5, Height: 5, Zoom: 1, Loads: []string{""}}
	assert.Equal(t, "https://otfbm.io/5x5?load=", OTFBMURL(plan, URLOptions{Scale: 5}))
}

func TestOTFBMURLSegmentOrder(t *testing.T) {
	plan := &models.BattlePlan{
		Width:    6,
		Height:   6,
		Zoom:     1,
		BG:       "http://bg.png",
		Walls:    []models.Wall{{SX: 0, SY: 0, EX: 0, EY: 2}},
		Units:    []models.Unit{{Size: "M", X: 1, Y: 1}, {Size: "G", X: 3, Y: 3, Colour: models.ColourCyan}},
		Overlays: []models.Overlay{{Type: models.OverlayArrow, SX: 0, SY: 5, EX: 5, EY: 5}},
		Loads:    []string{"http://l.json"},
	}

	want := "https://otfbm.io/6x6/_A1A3/B2r/D4Gc/*aA6F6?bg=http://bg.png&load=http://l.json"
	assert.Equal(t, want, OTFBMURL(plan, URLOptions{Scale: 5}))
}
