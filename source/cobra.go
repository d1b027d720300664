package source

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentflare-ai/go-manpage/manpage"
)

// FromCobra converts a command tree into a parser tree. Local flags form
// the options group, inherited flags form the global options group, and
// available subcommands are listed under commands. Hidden and deprecated
// commands are kept but suppressed; cobra's help topics are skipped.
// A command's Example becomes a preformatted EXAMPLES section.
func FromCobra(cmd *cobra.Command, opts ...Option) *manpage.Parser {
	p := fromCobra(cmd)
	Rename(p, buildOptions(opts).prog)
	return p
}

func fromCobra(cmd *cobra.Command) *manpage.Parser {
	p := &manpage.Parser{
		Prog:             cmd.CommandPath(),
		ShortDescription: cmd.Short,
		Description:      strings.TrimSpace(cmd.Long),
		Usage:            useLine(cmd),
		RawText:          true,
	}
	if p.Description == "" {
		p.Description = cmd.Short
	}

	p.Groups = append(p.Groups, flagGroups(cmd.NonInheritedFlags(), "options")...)
	p.Groups = append(p.Groups, flagGroups(cmd.InheritedFlags(), "global options")...)

	if sp := subcommands(cmd); sp != nil {
		p.Groups = append(p.Groups, manpage.Group{
			Title:   "commands",
			Actions: []manpage.Action{{Dest: "command", Subparsers: sp}},
		})
	}

	if ex := strings.Trim(cmd.Example, "\n"); ex != "" {
		p.Sections = append(p.Sections, manpage.Section{
			Heading:      "examples",
			Body:         ex,
			Preformatted: true,
		})
	}
	return p
}

func subcommands(cmd *cobra.Command) *manpage.Subparsers {
	sp := &manpage.Subparsers{}
	for _, c := range cmd.Commands() {
		if c.IsAdditionalHelpTopicCommand() || isDefaultHelp(c) {
			continue
		}
		child := fromCobra(c)
		help := c.Short
		if c.Hidden || c.Deprecated != "" {
			help = manpage.SuppressHelp
		}
		sp.Choices = append(sp.Choices, manpage.Choice{Name: c.Name(), Help: help, Parser: child})
		for _, alias := range c.Aliases {
			sp.Choices = append(sp.Choices, manpage.Choice{Name: alias, Parser: child})
		}
	}
	if len(sp.Choices) == 0 {
		return nil
	}
	return sp
}

// isDefaultHelp reports whether c looks like the help command cobra
// installs on its own.
func isDefaultHelp(c *cobra.Command) bool {
	return c.Name() == "help" && strings.HasPrefix(c.Short, "Help about any command")
}

// useLine is the synopsis cobra would print: the use line for runnable
// commands, otherwise the command path followed by a command placeholder.
func useLine(cmd *cobra.Command) string {
	if cmd.Runnable() || !cmd.HasAvailableSubCommands() {
		return cmd.UseLine()
	}
	return cmd.CommandPath() + " [command]"
}
