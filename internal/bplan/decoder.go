package bplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lagvtt/backend/internal/models"
)

// ErrMalformedScript is wrapped by every error returned from the decoders.
// Anything short of a structural failure is tolerated and skipped instead.
var ErrMalformedScript = errors.New("malformed battle script")

// wallRegex matches one "_"-separated piece of a -wall switch:
// start cell, optional door code, end cell, optional colour code.
var wallRegex = regexp.MustCompile(`([A-Z]+\d+)(?:-(\w))?([A-Z]+\d+)(?:,(\w+))?`)

// Decode reads either dialect. Text whose first line starts with "!bplan" is
// read as bplan lines, anything else as a uvar payload.
func Decode(text string) (*models.BattlePlan, error) {
	if strings.HasPrefix(strings.TrimSpace(text), "!bplan") {
		return FromBPlan(text)
	}
	return FromUvar(text)
}

// FromUvar rebuilds a plan from the JSON payload of a "!uvar Battles" command.
// The "!uvar Battles " prefix is optional.
func FromUvar(text string) (*models.BattlePlan, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, UvarPrefix)

	name, lines, err := readScriptJSON(s)
	if err != nil {
		return nil, err
	}

	plan := newDecodedPlan(name)
	for _, line := range lines {
		applyCommand(plan, SplitCommand(line))
	}
	return plan, nil
}

// FromBPlan rebuilds a plan from newline-separated "!bplan" commands as
// produced by ToBPlan.
func FromBPlan(text string) (*models.BattlePlan, error) {
	var plan *models.BattlePlan
	for _, line := range strings.Split(text, "\n") {
		cmd := SplitCommand(strings.TrimRight(line, "\r"))
		if cmd.Command != "!bplan" {
			continue
		}

		switch cmd.Arg(0) {
		case "new":
			if plan == nil {
				plan = newDecodedPlan(cmd.Arg(1))
			}
		case "map":
			if plan != nil && cmd.Arg(2) == "set" {
				if size, ok := cmd.Switch("mapsize"); ok {
					applySize(plan, size)
				}
				if bg, ok := cmd.Switch("bg"); ok {
					plan.BG = bg
				}
			}
		case "add":
			if plan != nil && len(cmd.Args) > 2 {
				applyCommand(plan, &Command{
					Command:  cmd.Args[2],
					Args:     cmd.Args[3:],
					Switches: cmd.Switches,
				})
			}
		}
	}

	if plan == nil || plan.Name == "" {
		return nil, fmt.Errorf("%w: no \"!bplan new\" line", ErrMalformedScript)
	}
	return plan, nil
}

// newDecodedPlan starts every decode. Width and height stay 1 unless the
// script says otherwise.
func newDecodedPlan(name string) *models.BattlePlan {
	return &models.BattlePlan{
		Name:     name,
		Width:    1,
		Height:   1,
		Zoom:     1,
		Units:    make([]models.Unit, 0),
		Walls:    make([]models.Wall, 0),
		Loads:    make([]string, 0),
		Overlays: make([]models.Overlay, 0),
	}
}

// readScriptJSON returns the first key of the top-level object and the string
// lines stored under it. Entries that are not strings are skipped.
func readScriptJSON(s string) (string, []string, error) {
	if !json.Valid([]byte(s)) {
		var probe interface{}
		err := json.Unmarshal([]byte(s), &probe)
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedScript, err)
	}

	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedScript, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", nil, fmt.Errorf("%w: expected an object", ErrMalformedScript)
	}
	if !dec.More() {
		return "", nil, fmt.Errorf("%w: empty object", ErrMalformedScript)
	}

	tok, err = dec.Token()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedScript, err)
	}
	name, _ := tok.(string)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedScript, err)
	}
	var entries []json.RawMessage
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &entries) != nil {
		return "", nil, fmt.Errorf("%w: value of %q is not a list of lines", ErrMalformedScript, name)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		var line string
		if json.Unmarshal(e, &line) == nil {
			lines = append(lines, line)
		}
	}
	return name, lines, nil
}

// applyCommand interprets one directive. Unknown commands are ignored.
func applyCommand(plan *models.BattlePlan, cmd *Command) {
	switch cmd.Command {
	case "!i", "!init":
		switch cmd.Arg(0) {
		case "effect":
			applyEffect(plan, cmd)
		case "madd":
			applyMAdd(plan, cmd)
		case "wall":
			applyLegacyWall(plan, cmd)
		}
	case "!map":
		if spec, ok := cmd.Switch("wall"); ok {
			applyWalls(plan, spec)
		}
		if url, ok := cmd.Switch("load"); ok {
			plan.Loads = append(plan.Loads, url)
		}
	}
}

func applyEffect(plan *models.BattlePlan, cmd *Command) {
	attack, ok := cmd.Switch("attack")
	if !ok {
		return
	}
	if len(attack) >= len(effectMarker) {
		attack = attack[len(effectMarker):]
	} else {
		attack = ""
	}

	for _, arg := range strings.Split(attack, effectSeparator) {
		key, val := around(arg, ": ")
		switch key {
		case "Size":
			applySize(plan, val)
		case "Background":
			plan.BG = val
		}
	}
}

// applySize reads "<width>x<height>". Halves that are not numbers leave the
// current value alone.
func applySize(plan *models.BattlePlan, val string) {
	w, h := around(val, "x")
	if n, ok := leadingInt(w); ok {
		plan.Width = n
	}
	if n, ok := leadingInt(h); ok {
		plan.Height = n
	}
}

func applyMAdd(plan *models.BattlePlan, cmd *Command) {
	u := models.Unit{
		Type:  cmd.Arg(1),
		Label: cmd.Switches["name"],
		Size:  models.DefaultSize,
	}

	location := ""
	for _, arg := range strings.Split(cmd.Switches["note"], noteSeparator) {
		key, val := around(arg, ": ")
		switch key {
		case "Location":
			location = val
		case "Color":
			if c := models.Colour(val); c.Valid() {
				u.Colour = c
			}
		case "Size":
			if models.ValidSize(val) {
				u.Size = val
			}
		}
	}
	u.X, u.Y = ParseCellLabel(location)

	plan.Units = append(plan.Units, u)
}

func applyWalls(plan *models.BattlePlan, spec string) {
	for _, piece := range strings.Split(spec, "_") {
		m := wallRegex.FindStringSubmatch(piece)
		if m == nil {
			continue
		}

		w := models.Wall{}
		w.SX, w.SY = ParseCellLabel(m[1])
		w.EX, w.EY = ParseCellLabel(m[3])
		if d := models.Door(m[2]); d.Valid() {
			w.Door = d
		}
		if c := models.Colour(m[4]); c.Valid() {
			w.Colour = c
		}
		plan.Walls = append(plan.Walls, w)
	}
}

// applyLegacyWall reads the older "!i wall -start x,y -end x,y" form.
func applyLegacyWall(plan *models.BattlePlan, cmd *Command) {
	w := models.Wall{}
	w.SX, w.SY = pair(cmd.Switches["start"])
	w.EX, w.EY = pair(cmd.Switches["end"])
	if c := models.Colour(cmd.Switches["color"]); c.Valid() {
		w.Colour = c
	}
	if d := models.Door(cmd.Switches["door"]); d.Valid() {
		w.Door = d
	}
	plan.Walls = append(plan.Walls, w)
}

func pair(s string) (int, int) {
	a, b, _ := strings.Cut(s, ",")
	return parseLeadingInt(a), parseLeadingInt(b)
}

// around splits s at the first mid. When mid is missing the key is empty and
// the value is s less its first len(mid)-1 bytes, as the bot does.
func around(s, mid string) (string, string) {
	i := strings.Index(s, mid)
	if i < 0 {
		return "", s[min(len(mid)-1, len(s)):]
	}
	return s[:i], s[i+len(mid):]
}
