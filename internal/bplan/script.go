package bplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lagvtt/backend/internal/models"
)

// UvarPrefix starts every script produced by ToUvar.
const UvarPrefix = "!uvar Battles "

const (
	noteSeparator   = " | "
	effectSeparator = " ~ "
	effectMarker    = "||"
	dmLine          = "!i add 100 DM -p"
)

// MAddLine renders the initiative-tracker line that adds u to the map.
func MAddLine(u models.Unit) string {
	parts := []string{"!i madd " + quote(u.Type)}
	notes := []string{"Location: " + Cell(u.X, u.Y)}
	if u.Label != "" {
		parts = append(parts, "-name "+quote(u.Label))
	}
	if u.Colour != "" {
		notes = append(notes, "Color: "+string(u.Colour))
	}
	if u.Size != models.DefaultSize {
		notes = append(notes, "Size: "+u.Size)
	}

	parts = append(parts, `-note "`+strings.Join(notes, noteSeparator)+`"`)
	return strings.Join(parts, " ")
}

// WallSpec renders a wall as "<start>[-<door>]<end>[,<colour>]".
func WallSpec(w models.Wall) string {
	var b strings.Builder
	b.WriteString(Cell(w.SX, w.SY))
	if w.Door != "" {
		b.WriteString("-" + string(w.Door))
	}
	b.WriteString(Cell(w.EX, w.EY))
	if w.Colour != "" {
		b.WriteString("," + string(w.Colour))
	}
	return b.String()
}

// WallLine renders the map command that draws w.
func WallLine(w models.Wall) string {
	return "!map -wall " + WallSpec(w)
}

// LoadLine renders the map command that pulls in an external JSON data source.
func LoadLine(url string) string {
	return "!map -load " + url
}

// effectLine stores the map metadata as a pseudo-attack on the DM combatant.
func effectLine(plan *models.BattlePlan) string {
	args := []string{fmt.Sprintf("Size: %dx%d", plan.Width, plan.Height)}
	if plan.BG != "" {
		args = append(args, "Background: "+plan.BG)
	}
	return `!i effect DM map -attack "` + effectMarker + strings.Join(args, effectSeparator) + `"`
}

// UvarLines returns the script lines stored under the plan name by ToUvar.
func UvarLines(plan *models.BattlePlan) []string {
	lines := make([]string, 0, 2+len(plan.Units)+len(plan.Walls)+len(plan.Loads))
	lines = append(lines, dmLine, effectLine(plan))
	for _, u := range plan.Units {
		lines = append(lines, MAddLine(u))
	}
	for _, w := range plan.Walls {
		lines = append(lines, WallLine(w))
	}
	for _, l := range plan.Loads {
		lines = append(lines, LoadLine(l))
	}
	return lines
}

// ToUvar encodes plan as a single "!uvar Battles {...}" command.
func ToUvar(plan *models.BattlePlan) string {
	return UvarPrefix + compactJSON(map[string][]string{plan.Name: UvarLines(plan)})
}

// ToBPlan encodes plan as a sequence of "!bplan" commands. Units come first,
// then walls, then loads.
func ToBPlan(plan *models.BattlePlan) []string {
	id := quote(plan.Name)
	mapArgs := []string{fmt.Sprintf("-mapsize %dx%d", plan.Width, plan.Height)}
	if plan.BG != "" {
		mapArgs = append(mapArgs, "-bg "+plan.BG)
	}

	add := "!bplan add " + id + " "
	lines := []string{
		"!bplan new " + id,
		"!bplan map " + id + " set " + strings.Join(mapArgs, " "),
	}
	for _, u := range plan.Units {
		lines = append(lines, add+MAddLine(u))
	}
	for _, w := range plan.Walls {
		lines = append(lines, add+WallLine(w))
	}
	for _, l := range plan.Loads {
		lines = append(lines, add+LoadLine(l))
	}
	return lines
}

// compactJSON encodes v without indentation or HTML escaping.
func compactJSON(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// maps of strings always encode
	_ = enc.Encode(v)
	return strings.TrimSuffix(buf.String(), "\n")
}
