package manpage

import (
	"fmt"
	"strings"
)

const defaultCommandsTitle = "commands"

// command is one distinct child parser with the names it is registered
// under. The first registration is the primary name.
type command struct {
	name    string
	help    string
	aliases []string
	parser  *Parser
}

// commands groups the registrations of sp by parser. The first name a
// parser is registered under becomes its primary name; later names are
// its aliases.
func commands(sp *Subparsers) []*command {
	var ordered []*command
	byParser := make(map[*Parser]*command, len(sp.Choices))
	for _, c := range sp.Choices {
		if c.Parser != nil {
			if primary, ok := byParser[c.Parser]; ok {
				primary.aliases = append(primary.aliases, c.Name)
				continue
			}
		}
		cmd := &command{name: c.Name, help: c.Help, parser: c.Parser}
		if c.Parser != nil {
			byParser[c.Parser] = cmd
		}
		ordered = append(ordered, cmd)
	}
	return ordered
}

func aliasSuffix(aliases []string) string {
	if len(aliases) == 0 {
		return ""
	}
	return " (" + strings.Join(aliases, ", ") + ")"
}

// formatSubparsers renders a subcommand dispatcher: the section that lists
// the commands, followed by one section per visible command.
func (r *renderer) formatSubparsers(g Group, sp *Subparsers, path string, depth int) ([]string, error) {
	title := g.Title
	if title == "" {
		title = defaultCommandsTitle
	}
	title = Escape(strings.ToUpper(title))

	var lines []string
	switch {
	case path == "":
		lines = append(lines, ".SH", title)
	case r.format == Pretty:
		lines = append(lines, ".SH", title+" "+Underline(Quote(path)))
	}

	parent := path
	if parent == "" {
		parent = r.prog
	}
	cmds := commands(sp)
	if r.format == Pretty {
		lines = append(lines, r.formatCommandList(cmds, parent)...)
	}
	for _, cmd := range cmds {
		if cmd.help == SuppressHelp {
			continue
		}
		if cmd.parser == nil {
			return nil, fmt.Errorf("%w: subcommand %q has no parser", ErrInvalidParser, cmd.name)
		}
		child, err := r.formatParser(cmd.parser, parent+" "+cmd.name, cmd.aliases, cmd.help, depth+1)
		if err != nil {
			return nil, err
		}
		lines = append(lines, child...)
	}
	return lines, nil
}

// formatCommandList renders the listing of visible commands with their
// one-line help.
func (r *renderer) formatCommandList(cmds []*command, parent string) []string {
	var lines []string
	for _, cmd := range cmds {
		if cmd.help == SuppressHelp {
			continue
		}
		lines = append(lines, ".TP", Bold(parent)+" "+Underline(cmd.name))
		if cmd.help != "" {
			lines = append(lines, formatText(cmd.help, cmd.parser != nil && cmd.parser.RawText))
		}
	}
	return lines
}

// formatParser renders a parser body. For a nested parser path is its
// command path and the output starts with the command's own heading.
func (r *renderer) formatParser(p *Parser, path string, aliases []string, help string, depth int) ([]string, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: %q", ErrTooDeep, path)
	}
	var lines []string
	if path != "" {
		switch r.format {
		case Pretty:
			lines = append(lines, "", ".SH COMMAND "+Underline(Quote(path)))
		case SingleCommandsSection:
			lines = append(lines, ".SS "+Bold(path+aliasSuffix(aliases)))
			if help != "" {
				lines = append(lines, formatText(help, p.RawText), "")
			}
		}
		lines = append(lines, formatText("usage: "+p.usage(), true))
	}

	if p.Description != "" {
		if path != "" {
			lines = append(lines, "")
		} else {
			lines = append(lines, ".SH DESCRIPTION")
		}
		lines = append(lines, formatText(p.Description, p.RawText))
	}

	for _, g := range p.Groups {
		ag, err := r.formatGroup(g, p, path, depth)
		if err != nil {
			return nil, err
		}
		if len(ag) == 0 {
			continue
		}
		lines = append(lines, "")
		lines = append(lines, ag...)
	}
	return lines, nil
}
