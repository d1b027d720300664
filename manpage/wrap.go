package manpage

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextWidth is the fill column for descriptions and help texts. It is fixed
// so that output does not depend on the terminal.
const TextWidth = 78

// fill collapses runs of whitespace and wraps text at width display
// columns. Words wider than width are kept whole on their own line.
func fill(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	col := 0
	for _, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case col == 0:
		case col+1+w > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += w
	}
	return b.String()
}

// formatText turns free text into a roff text block: filled (unless raw),
// escaped, and with no leading or trailing newlines.
func formatText(text string, raw bool) string {
	if raw {
		text = strings.Trim(text, "\n")
	} else {
		text = fill(text, TextWidth)
	}
	return protectLines(Escape(text))
}
