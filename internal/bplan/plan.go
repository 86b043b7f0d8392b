package bplan

import "github.com/lagvtt/backend/internal/models"

// NewPlan returns the blank 5x5 plan a new map starts from.
func NewPlan(name string) *models.BattlePlan {
	plan := newDecodedPlan(name)
	plan.Width = 5
	plan.Height = 5
	return plan
}

// Normalize returns a copy of plan with out-of-range values replaced by their
// defaults: dimensions and zoom below 1 become 1, unknown colour, size and
// door codes fall back to the default, and nil collections become empty.
// The input is not modified.
func Normalize(plan *models.BattlePlan) *models.BattlePlan {
	out := *plan
	out.Width = orOne(out.Width)
	out.Height = orOne(out.Height)
	if out.Zoom <= 0 {
		out.Zoom = 1
	}
	if out.GridSize != nil {
		gs := orOne(*out.GridSize)
		out.GridSize = &gs
	}

	out.Units = make([]models.Unit, len(plan.Units))
	for i, u := range plan.Units {
		if !u.Colour.Valid() {
			u.Colour = ""
		}
		if !models.ValidSize(u.Size) {
			u.Size = models.DefaultSize
		}
		out.Units[i] = u
	}

	out.Walls = make([]models.Wall, len(plan.Walls))
	for i, w := range plan.Walls {
		if !w.Colour.Valid() {
			w.Colour = ""
		}
		if !w.Door.Valid() {
			w.Door = ""
		}
		out.Walls[i] = w
	}

	out.Loads = append(make([]string, 0, len(plan.Loads)), plan.Loads...)

	out.Overlays = make([]models.Overlay, 0, len(plan.Overlays))
	for _, o := range plan.Overlays {
		if !o.Type.Valid() {
			continue
		}
		if !o.Colour.Valid() {
			o.Colour = ""
		}
		out.Overlays = append(out.Overlays, o)
	}

	return &out
}

func orOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// UnitAt returns the first unit standing on (x, y).
func UnitAt(plan *models.BattlePlan, x, y int) (models.Unit, bool) {
	for _, u := range plan.Units {
		if u.X == x && u.Y == y {
			return u, true
		}
	}
	return models.Unit{}, false
}
