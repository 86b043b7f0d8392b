package bplan

import (
	"strconv"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ColumnLabel converts a 0-based column index into its letter label.
// Letters are written least significant first ("A" is 0, "AB" is 26) to stay
// compatible with cell labels already saved by the chat bot.
func ColumnLabel(n int) string {
	var b strings.Builder
	for n > 0 || b.Len() == 0 {
		b.WriteByte(alphabet[n%26])
		n /= 26
	}
	return b.String()
}

// ParseColumnLabel is the inverse of ColumnLabel. Characters outside A-Z
// count as -1, matching the bot's own lookup.
func ParseColumnLabel(l string) int {
	total := 0
	for i := len(l) - 1; i >= 0; i-- {
		total = total*26 + strings.IndexByte(alphabet, l[i])
	}
	return total
}

// Cell returns the label for grid position (x, y), e.g. Cell(2, 3) == "C4".
func Cell(x, y int) string {
	return ColumnLabel(x) + strconv.Itoa(y+1)
}

// ParseCellLabel splits a label such as "c4" at its first digit and returns the
// 0-based grid position. A label without digits yields (0, 0).
func ParseCellLabel(l string) (x, y int) {
	for i := 0; i < len(l); i++ {
		if l[i] >= '0' && l[i] <= '9' {
			col := strings.ToUpper(l[:i])
			return ParseColumnLabel(col), parseLeadingInt(l[i:]) - 1
		}
	}
	return 0, 0
}

// parseLeadingInt reads an optionally signed run of leading digits and ignores
// whatever follows it. It returns 0 when there are no digits.
func parseLeadingInt(s string) int {
	n, _ := leadingInt(s)
	return n
}

// leadingInt is parseLeadingInt that also reports whether any digits were read.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
