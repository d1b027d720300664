package manpage

import "strings"

// invocation renders the label of an action entry: the bold metavar of a
// positional, the bold option strings of a flag, or each option string
// followed by its underlined value placeholder.
func (a Action) invocation() string {
	if a.Positional() {
		mv := a.metavar(a.Dest)
		if mv == "" {
			return ""
		}
		return Bold(mv)
	}
	parts := make([]string, 0, len(a.OptionStrings))
	if !a.takesValue() {
		for _, opt := range a.OptionStrings {
			parts = append(parts, Bold(opt))
		}
		return strings.Join(parts, ", ")
	}
	args := a.formatArgs(strings.ToUpper(a.Dest))
	for _, opt := range a.OptionStrings {
		parts = append(parts, Bold(opt)+" "+Underline(args))
	}
	return strings.Join(parts, ", ")
}

// expandHelp substitutes %(name)s references in the help text.
func (a Action) expandHelp(prog string) string {
	help := a.Help
	if !strings.Contains(help, "%") {
		return help
	}
	const percent = "\x00"
	help = strings.ReplaceAll(help, "%%", percent)
	help = strings.NewReplacer(
		"%(default)s", a.Default,
		"%(prog)s", prog,
		"%(dest)s", a.Dest,
		"%(metavar)s", a.metavar(strings.ToUpper(a.Dest)),
		"%(choices)s", strings.Join(a.Choices, ", "),
	).Replace(help)
	return strings.ReplaceAll(help, percent, "%")
}

// formatAction renders one action as a tagged paragraph.
func (r *renderer) formatAction(a Action, prog string, raw bool) []string {
	lines := []string{".TP", a.invocation()}
	if a.Help != "" {
		lines = append(lines, formatText(a.expandHelp(prog), raw))
	}
	return lines
}
