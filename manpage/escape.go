package manpage

import "strings"

const (
	boldOpen       = `\fB`
	underlineOpen  = `\fI\,`
	underlineClose = `\/\fR`
	fontReset      = `\fR`
)

// Escape doubles backslashes and escapes hyphens for roff.
func Escape(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	return strings.ReplaceAll(text, "-", `\-`)
}

// Bold escapes text and wraps it in bold font directives. Text that is
// already bold is returned unchanged.
func Bold(text string) string {
	if isWrapped(text, boldOpen, fontReset) {
		return text
	}
	return boldOpen + Escape(text) + fontReset
}

// Underline escapes text and wraps it in italic font directives with
// italic corrections. Text that is already underlined is returned unchanged.
func Underline(text string) string {
	if isWrapped(text, underlineOpen, underlineClose) {
		return text
	}
	return underlineOpen + Escape(text) + underlineClose
}

// Quote wraps text in single quotes.
func Quote(text string) string {
	return "'" + text + "'"
}

func isWrapped(text, open, close string) bool {
	return len(text) >= len(open)+len(close) &&
		strings.HasPrefix(text, open) && strings.HasSuffix(text, close)
}

// protectLines prefixes lines that would otherwise be read as roff
// requests.
func protectLines(text string) string {
	if !strings.ContainsAny(text, ".'") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, ".") || strings.HasPrefix(line, "'") {
			lines[i] = `\&` + line
		}
	}
	return strings.Join(lines, "\n")
}
