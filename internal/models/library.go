package models

import "time"

// PlanInfo represents metadata about a stored battle plan.
type PlanInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	UnitCount int       `json:"unitCount"`
	WallCount int       `json:"wallCount"`
	SavedAt   time.Time `json:"savedAt"`
}

// SavedUnit is a unit remembered by label so it can be dropped onto other maps.
// Position is not part of the record.
type SavedUnit struct {
	Label  string `json:"label"`
	Type   string `json:"type"`
	Colour Colour `json:"colour,omitempty"`
	Size   string `json:"size"`
	Token  string `json:"token,omitempty"`
	NoFace bool   `json:"noface,omitempty"`
}

// SavedImage is a named background image URL.
type SavedImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SavedUnitFrom strips the position from u.
func SavedUnitFrom(u Unit) SavedUnit {
	return SavedUnit{
		Label:  u.Label,
		Type:   u.Type,
		Colour: u.Colour,
		Size:   u.Size,
		Token:  u.Token,
		NoFace: u.NoFace,
	}
}

// Place puts a saved unit at a grid position.
func (s SavedUnit) Place(x, y int) Unit {
	return Unit{
		Label:  s.Label,
		Type:   s.Type,
		X:      x,
		Y:      y,
		Colour: s.Colour,
		Size:   s.Size,
		Token:  s.Token,
		NoFace: s.NoFace,
	}
}
