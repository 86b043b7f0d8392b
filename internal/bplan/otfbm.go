package bplan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lagvtt/backend/internal/models"
)

// OTFBMBase is the root of every map-rendering URL.
const OTFBMBase = "https://otfbm.io/"

// DefaultGridSize is the renderer's cell size in pixels when a plan sets none.
const DefaultGridSize = 40

// URLOptions tunes OTFBMURL.
type URLOptions struct {
	// Scale is the distance one cell represents; overlay measurements are
	// divided by it before being converted to pixels. Values <= 0 mean 1.
	Scale float64
}

// OTFBMURL renders plan as a map-rendering URL. Path segments are emitted as is,
// so labels containing '/', '?' or '&' will break the URL.
func OTFBMURL(plan *models.BattlePlan, opts URLOptions) string {
	var b strings.Builder
	b.WriteString(OTFBMBase)

	if plan.StartX != 0 || plan.StartY != 0 {
		b.WriteString(Cell(plan.StartX, plan.StartY) + ":")
	}
	fmt.Fprintf(&b, "%dx%d", plan.Width, plan.Height)
	if plan.Zoom != 0 && plan.Zoom != 1 {
		b.WriteString("/@" + formatNumber(plan.Zoom))
	}
	if plan.GridSize != nil {
		fmt.Fprintf(&b, "/@c%d", *plan.GridSize)
	}
	if plan.BGX != 0 || plan.BGY != 0 {
		fmt.Fprintf(&b, "/@o%d:%d", plan.BGX, plan.BGY)
	}

	if len(plan.Walls) > 0 {
		b.WriteString("/")
		writeWalls(&b, plan.Walls)
	}

	for _, u := range plan.Units {
		writeUnit(&b, u)
	}

	e := overlayEncoder{gridSize: DefaultGridSize, scale: opts.Scale}
	if plan.GridSize != nil {
		e.gridSize = *plan.GridSize
	}
	if e.scale <= 0 {
		e.scale = 1
	}
	for _, o := range plan.Overlays {
		e.write(&b, o)
	}

	var query []string
	if plan.BG != "" {
		query = append(query, "bg="+plan.BG)
	}
	for _, l := range plan.Loads {
		query = append(query, "load="+l)
	}
	if len(query) > 0 {
		b.WriteString("?" + strings.Join(query, "&"))
	}

	return b.String()
}

// writeWalls folds the walls left to right, carrying the last end cell and the
// last emitted colour. A wall that starts where the previous one ended, in the
// same colour, continues the polyline without a separator.
func writeWalls(b *strings.Builder, walls []models.Wall) {
	cursor := ""
	colour := models.DefaultWallColour

	for _, w := range walls {
		start := Cell(w.SX, w.SY)
		switch {
		case w.Colour != "" && w.Colour != colour:
			b.WriteString("_-c" + string(w.Colour) + start)
			colour = w.Colour
		case start != cursor:
			b.WriteString("_" + start)
		}
		if w.Door != "" {
			b.WriteString("-" + string(w.Door))
		}
		cursor = Cell(w.EX, w.EY)
		b.WriteString(cursor)
	}
}

func writeUnit(b *strings.Builder, u models.Unit) {
	b.WriteString("/" + Cell(u.X, u.Y))
	if u.Size != models.DefaultSize {
		b.WriteString(u.Size)
	}
	if u.Colour != "" {
		b.WriteString(string(u.Colour))
	} else {
		b.WriteString(string(models.DefaultUnitColour))
	}
	if u.Label != "" {
		b.WriteString("-" + u.Label)
	}
	if u.Token != "" {
		b.WriteString("~" + u.Token)
		if u.NoFace {
			b.WriteString("~")
		}
	}
}

type overlayEncoder struct {
	gridSize int
	scale    float64
}

// nscale converts a distance into renderer pixels.
func (e overlayEncoder) nscale(n float64) string {
	return formatNumber(n * float64(e.gridSize) / e.scale)
}

func (e overlayEncoder) write(b *strings.Builder, o models.Overlay) {
	colour := string(o.Colour)
	start := Cell(o.SX, o.SY)
	end := Cell(o.EX, o.EY)

	var body string
	switch o.Type {
	case models.OverlayArrow:
		body = "a" + colour + start + end
	case models.OverlayCircle:
		body = "c" + anchor(o.TopLeftAnchor) + e.nscale(o.Diameter) + colour + start
	case models.OverlayCone:
		body = "t" + e.nscale(o.Length) + colour + start + end
	case models.OverlayLine:
		body = "l" + e.nscale(o.Length)
		if o.Width != 0 {
			body += "," + e.nscale(o.Width)
		}
		body += colour + start + end
	case models.OverlaySquare:
		body = "s" + anchor(o.TopLeftAnchor) + e.nscale(o.Size) + colour + start
		if !o.TopLeftAnchor {
			body += end
		}
	default:
		return
	}

	b.WriteString("/*")
	if o.Under {
		b.WriteString("u")
	}
	b.WriteString(body)
}

func anchor(topLeft bool) string {
	if topLeft {
		return "t"
	}
	return ""
}

// formatNumber prints n the way a JavaScript number prints: no trailing zeros,
// no exponent for map-sized values.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
