package bplan

import "strings"

// Command is one tokenized script line.
type Command struct {
	Command  string
	Args     []string
	Switches map[string]string
}

// Switch returns the value of a named switch and whether it was present.
func (c *Command) Switch(name string) (string, bool) {
	v, ok := c.Switches[name]
	return v, ok
}

// Arg returns the i-th positional argument, or "" if there is none.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// SplitCommand tokenizes a single line of bot command script.
//
// Words are separated by single spaces. A double quote toggles quoting, inside
// which spaces are literal; the quotes themselves are dropped. The first word
// is the command. A word starting with "-" names a switch whose value is the
// next word; any other word is a positional argument. A switch that is still
// waiting for its value at the end of the line is dropped.
func SplitCommand(line string) *Command {
	t := tokenizer{
		cmd: &Command{
			Args:     make([]string, 0),
			Switches: make(map[string]string),
		},
	}

	quoted := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quoted:
			if ch == '"' {
				quoted = false
			} else {
				t.current.WriteByte(ch)
			}
		case ch == '"':
			quoted = true
		case ch == ' ':
			t.flush()
		default:
			t.current.WriteByte(ch)
		}
	}
	if t.current.Len() > 0 {
		t.flush()
	}

	return t.cmd
}

type tokenizer struct {
	cmd     *Command
	current strings.Builder
	pending string // switch name awaiting its value, including the hyphen
}

// flush assigns the word collected so far. Empty words (from repeated spaces or
// "") are assigned too, which is how a switch gets an explicit empty value.
func (t *tokenizer) flush() {
	word := t.current.String()
	t.current.Reset()

	switch {
	case t.cmd.Command == "":
		t.cmd.Command = word
	case strings.HasPrefix(word, "-"):
		t.pending = word
	case t.pending != "":
		t.cmd.Switches[t.pending[1:]] = word
		t.pending = ""
	default:
		t.cmd.Args = append(t.cmd.Args, word)
	}
}

// quote wraps s in double quotes when it contains a space. Embedded quotes are
// not escaped; the bot's own parser has no escape syntax.
func quote(s string) string {
	if strings.Contains(s, " ") {
		return `"` + s + `"`
	}
	return s
}
