package models

// OverlayType tags the shape carried by an Overlay.
type OverlayType string

const (
	OverlayArrow  OverlayType = "arrow"
	OverlayCircle OverlayType = "circle"
	OverlayCone   OverlayType = "cone"
	OverlayLine   OverlayType = "line"
	OverlaySquare OverlayType = "square"
)

// OverlayTypes is the closed set of overlay shapes.
var OverlayTypes = []OverlayType{OverlayArrow, OverlayCircle, OverlayCone, OverlayLine, OverlaySquare}

// Overlay is a shape annotation drawn over (or under) the units.
// Which fields are meaningful depends on Type:
//
//	arrow:  SX, SY, EX, EY
//	circle: SX, SY, Diameter, TopLeftAnchor
//	cone:   SX, SY, EX, EY, Length
//	line:   SX, SY, EX, EY, Length, Width
//	square: SX, SY, Size, TopLeftAnchor, and EX, EY unless TopLeftAnchor
type Overlay struct {
	Type          OverlayType `json:"type" yaml:"type"`
	Under         bool        `json:"under,omitempty" yaml:"under,omitempty"`
	Colour        Colour      `json:"colour,omitempty" yaml:"colour,omitempty"`
	SX            int         `json:"sx" yaml:"sx"`
	SY            int         `json:"sy" yaml:"sy"`
	EX            int         `json:"ex,omitempty" yaml:"ex,omitempty"`
	EY            int         `json:"ey,omitempty" yaml:"ey,omitempty"`
	Diameter      float64     `json:"diameter,omitempty" yaml:"diameter,omitempty"`
	Length        float64     `json:"length,omitempty" yaml:"length,omitempty"`
	Width         float64     `json:"width,omitempty" yaml:"width,omitempty"`
	Size          float64     `json:"size,omitempty" yaml:"size,omitempty"`
	TopLeftAnchor bool        `json:"topLeftAnchor,omitempty" yaml:"topLeftAnchor,omitempty"`
}

// Valid reports whether t is one of the known overlay shapes.
func (t OverlayType) Valid() bool {
	for _, v := range OverlayTypes {
		if v == t {
			return true
		}
	}
	return false
}
