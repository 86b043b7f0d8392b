package models

// Colour is a palette code understood by the chat bot and the map renderer.
type Colour string

const (
	ColourWhite  Colour = "w"
	ColourBlack  Colour = "k"
	ColourGrey   Colour = "e"
	ColourRed    Colour = "r"
	ColourGreen  Colour = "g"
	ColourBlue   Colour = "b"
	ColourYellow Colour = "y"
	ColourPurple Colour = "p"
	ColourCyan   Colour = "c"
	ColourBrown  Colour = "n"
	ColourOrange Colour = "o"
	ColourPink   Colour = "pk"
)

// ColourValues maps each palette code to its display colour.
var ColourValues = map[Colour]string{
	ColourWhite:  "white",
	ColourBlack:  "black",
	ColourGrey:   "grey",
	ColourRed:    "#f33",
	ColourGreen:  "#3c6",
	ColourBlue:   "#37b",
	ColourYellow: "#fd8",
	ColourPurple: "#c6a",
	ColourCyan:   "skyblue",
	ColourBrown:  "#422",
	ColourOrange: "#f80",
	ColourPink:   "#fce",
}

// Colours lists the palette in display order.
var Colours = []Colour{
	ColourWhite, ColourBlack, ColourGrey, ColourRed, ColourGreen, ColourBlue,
	ColourYellow, ColourPurple, ColourCyan, ColourBrown, ColourOrange, ColourPink,
}

// DefaultUnitColour is drawn when a unit has no colour of its own.
const DefaultUnitColour = ColourRed

// DefaultWallColour is the colour the renderer assumes for walls.
const DefaultWallColour = ColourBlack

// Valid reports whether c is a known palette code.
func (c Colour) Valid() bool {
	_, ok := ColourValues[c]
	return ok
}

// Sizes lists the unit size codes from smallest to largest.
var Sizes = []string{"T", "S", "M", "L", "H", "G"}

// DefaultSize is the size code assumed when none is given.
const DefaultSize = "M"

// ValidSize reports whether s is a known size code.
func ValidSize(s string) bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// Door is a door marker placed on a wall.
type Door string

const (
	DoorOpen   Door = "o"
	DoorClosed Door = "d"
	DoorDouble Door = "b"
	DoorSecret Door = "s"
)

// DoorTypes maps each door code to its name.
var DoorTypes = map[Door]string{
	DoorOpen:   "open",
	DoorClosed: "closed",
	DoorDouble: "double",
	DoorSecret: "secret",
}

// Valid reports whether d is a known door code.
func (d Door) Valid() bool {
	_, ok := DoorTypes[d]
	return ok
}

// Unit is a token placed on the grid.
type Unit struct {
	Label  string `json:"label" yaml:"label"`
	Type   string `json:"type" yaml:"type"`
	X      int    `json:"x" yaml:"x"`
	Y      int    `json:"y" yaml:"y"`
	Colour Colour `json:"colour,omitempty" yaml:"colour,omitempty"`
	Size   string `json:"size" yaml:"size"`
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	NoFace bool   `json:"noface,omitempty" yaml:"noface,omitempty"`
}

// Wall is a line segment between two grid points, optionally carrying a door.
type Wall struct {
	SX     int    `json:"sx" yaml:"sx"`
	SY     int    `json:"sy" yaml:"sy"`
	EX     int    `json:"ex" yaml:"ex"`
	EY     int    `json:"ey" yaml:"ey"`
	Colour Colour `json:"colour,omitempty" yaml:"colour,omitempty"`
	Door   Door   `json:"door,omitempty" yaml:"door,omitempty"`
}

// BattlePlan is the full description of a battle map.
type BattlePlan struct {
	Name     string    `json:"name" yaml:"name"`
	Width    int       `json:"width" yaml:"width"`
	Height   int       `json:"height" yaml:"height"`
	Zoom     float64   `json:"zoom" yaml:"zoom"`
	Units    []Unit    `json:"units" yaml:"units"`
	BG       string    `json:"bg,omitempty" yaml:"bg,omitempty"`
	BGX      int       `json:"bgx,omitempty" yaml:"bgx,omitempty"`
	BGY      int       `json:"bgy,omitempty" yaml:"bgy,omitempty"`
	StartX   int       `json:"startx,omitempty" yaml:"startx,omitempty"`
	StartY   int       `json:"starty,omitempty" yaml:"starty,omitempty"`
	GridSize *int      `json:"gridsize,omitempty" yaml:"gridsize,omitempty"` // nil leaves the renderer default in place
	Walls    []Wall    `json:"walls" yaml:"walls"`
	Loads    []string  `json:"loads" yaml:"loads"`
	Overlays []Overlay `json:"overlays" yaml:"overlays"`
}
