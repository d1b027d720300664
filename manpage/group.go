package manpage

import (
	"fmt"
	"strings"
)

// groupTitles unify group titles that differ between argument-parser
// versions. Keys are canonical titles; an empty key drops the heading.
var (
	groupTitles = map[string][]string{
		"":        {"positional arguments"},
		"OPTIONS": {"optional arguments", "options"},
	}
	nestedGroupTitles = map[string][]string{
		"arguments:": {"positional arguments"},
		"options:":   {"optional arguments", "options"},
	}
)

// groupTitle resolves a declared group title through the remapping table
// that applies at the given nesting.
func (r *renderer) groupTitle(title string, nested bool) string {
	table := groupTitles
	if nested && r.format == SingleCommandsSection {
		table = nestedGroupTitles
	}
	for canonical, synonyms := range table {
		for _, s := range synonyms {
			if strings.EqualFold(title, s) {
				return canonical
			}
		}
	}
	return title
}

// formatGroup renders one argument group. A group holding a subcommand
// dispatcher is rendered by formatSubparsers; a group with nothing left to
// document renders to nil.
func (r *renderer) formatGroup(g Group, owner *Parser, path string, depth int) ([]string, error) {
	var visible []Action
	for _, a := range g.Actions {
		if a.Suppressed() || a.IsHelp {
			continue
		}
		visible = append(visible, a)
	}
	for _, a := range visible {
		if a.Subparsers == nil {
			continue
		}
		if len(visible) > 1 {
			return nil, fmt.Errorf("%w: group %q mixes subcommands with other arguments", ErrInvalidParser, g.Title)
		}
		return r.formatSubparsers(g, a.Subparsers, path, depth)
	}

	prog := path
	if prog == "" {
		prog = r.prog
	}
	var content []string
	for _, a := range visible {
		if len(content) > 0 {
			content = append(content, "")
		}
		content = append(content, r.formatAction(a, prog, owner.RawText)...)
	}
	if len(content) == 0 {
		return nil, nil
	}

	var lines []string
	if title := r.groupTitle(g.Title, path != ""); title != "" {
		switch {
		case path == "":
			lines = append(lines, ".SH "+Escape(strings.ToUpper(title)))
		case r.format == Pretty:
			lines = append(lines, ".SH "+Escape(strings.ToUpper(title))+" "+Underline(Quote(path)))
		default:
			lines = append(lines, Escape(title))
		}
	}
	if g.Description != "" {
		lines = append(lines, formatText(g.Description, owner.RawText), "")
	}
	if path != "" && r.format == SingleCommandsSection {
		content = append(append([]string{".RS 7"}, content...), ".RE", "")
	}
	return append(lines, content...), nil
}
