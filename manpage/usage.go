package manpage

import (
	"strconv"
	"strings"
)

// metavar returns the placeholder for an action's value: the declared
// metavar, the choices in braces, or def.
func (a Action) metavar(def string) string {
	switch {
	case a.Metavar != "":
		return a.Metavar
	case len(a.Choices) > 0:
		return "{" + strings.Join(a.Choices, ",") + "}"
	default:
		return def
	}
}

// formatArgs renders the value placeholder according to the action's
// arity.
func (a Action) formatArgs(def string) string {
	mv := a.metavar(def)
	switch a.Nargs {
	case NargsSingle:
		return mv
	case NargsNone:
		return ""
	case NargsOptional:
		return "[" + mv + "]"
	case NargsZeroOrMore:
		return "[" + mv + " ...]"
	case NargsOneOrMore:
		return mv + " [" + mv + " ...]"
	case NargsRemainder:
		return "..."
	}
	n, err := strconv.Atoi(a.Nargs)
	if err != nil || n < 0 {
		return mv
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = mv
	}
	return strings.Join(parts, " ")
}

// takesValue reports whether an option consumes at least one value token.
func (a Action) takesValue() bool {
	return a.Nargs != NargsNone
}

// subcommandNames returns every registered name, aliases included.
func (s *Subparsers) subcommandNames() []string {
	names := make([]string, 0, len(s.Choices))
	for _, c := range s.Choices {
		names = append(names, c.Name)
	}
	return names
}

// usage returns the parser's synopsis, synthesizing one from its actions
// when none was declared.
func (p *Parser) usage() string {
	if strings.TrimSpace(p.Usage) != "" {
		return strings.TrimSpace(p.Usage)
	}
	return SynthesizeUsage(p)
}

// SynthesizeUsage builds a usage line from the parser's actions: the
// program name, then optionals, then positionals and the subcommand
// dispatcher.
func SynthesizeUsage(p *Parser) string {
	parts := []string{p.Prog}
	var positionals []string
	for _, g := range p.Groups {
		for _, a := range g.Actions {
			if a.Suppressed() {
				continue
			}
			switch {
			case a.Subparsers != nil:
				choices := "{" + strings.Join(a.Subparsers.subcommandNames(), ",") + "}"
				positionals = append(positionals, choices+" ...")
			case a.Positional():
				if s := a.formatArgs(a.Dest); s != "" {
					positionals = append(positionals, s)
				}
			default:
				part := a.OptionStrings[0]
				if a.takesValue() {
					part += " " + a.formatArgs(strings.ToUpper(a.Dest))
				}
				if !a.Required {
					part = "[" + part + "]"
				}
				parts = append(parts, part)
			}
		}
	}
	return strings.Join(append(parts, positionals...), " ")
}
