package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/go-manpage/manpage"
)

// Description is the serializable form of a parser tree. Aliases are
// spelled out by name instead of by sharing a parser, so the same schema
// works for YAML, TOML and JSON files.
type Description struct {
	Prog             string               `json:"prog" yaml:"prog" toml:"prog"`
	ShortDescription string               `json:"short_description,omitempty" yaml:"short_description,omitempty" toml:"short_description,omitempty"`
	Description      string               `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Epilog           string               `json:"epilog,omitempty" yaml:"epilog,omitempty" toml:"epilog,omitempty"`
	Usage            string               `json:"usage,omitempty" yaml:"usage,omitempty" toml:"usage,omitempty"`
	RawText          bool                 `json:"raw_text,omitempty" yaml:"raw_text,omitempty" toml:"raw_text,omitempty"`
	Groups           []GroupDescription   `json:"groups,omitempty" yaml:"groups,omitempty" toml:"groups,omitempty"`
	Sections         []SectionDescription `json:"sections,omitempty" yaml:"sections,omitempty" toml:"sections,omitempty"`
}

// GroupDescription describes an argument group.
type GroupDescription struct {
	Title       string              `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Actions     []ActionDescription `json:"actions,omitempty" yaml:"actions,omitempty" toml:"actions,omitempty"`
}

// ActionDescription describes an argument, an option, or, when Commands is
// set, a subcommand dispatcher.
type ActionDescription struct {
	Options  []string             `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Dest     string               `json:"dest,omitempty" yaml:"dest,omitempty" toml:"dest,omitempty"`
	Metavar  string               `json:"metavar,omitempty" yaml:"metavar,omitempty" toml:"metavar,omitempty"`
	Nargs    Arity                `json:"nargs,omitempty" yaml:"nargs,omitempty" toml:"nargs,omitempty"`
	Choices  []string             `json:"choices,omitempty" yaml:"choices,omitempty" toml:"choices,omitempty"`
	Help     string               `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Hidden   bool                 `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Default  string               `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Required bool                 `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	IsHelp   bool                 `json:"help_option,omitempty" yaml:"help_option,omitempty" toml:"help_option,omitempty"`
	Commands []CommandDescription `json:"commands,omitempty" yaml:"commands,omitempty" toml:"commands,omitempty"`
}

// CommandDescription describes one subcommand and the names it answers to.
type CommandDescription struct {
	Name    string      `json:"name" yaml:"name" toml:"name"`
	Aliases []string    `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Help    string      `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Hidden  bool        `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Parser  Description `json:"parser" yaml:"parser" toml:"parser"`
}

// SectionDescription describes a free-form section.
type SectionDescription struct {
	Heading      string `json:"heading" yaml:"heading" toml:"heading"`
	Body         string `json:"body" yaml:"body" toml:"body"`
	Preformatted bool   `json:"preformatted,omitempty" yaml:"preformatted,omitempty" toml:"preformatted,omitempty"`
}

// Arity is an action's number of values. Files may spell it as a number
// or as one of "?", "*", "+" and "...".
type Arity string

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Arity) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch s {
	case manpage.NargsSingle, manpage.NargsOptional, manpage.NargsZeroOrMore,
		manpage.NargsOneOrMore, manpage.NargsRemainder:
		*a = Arity(s)
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return fmt.Errorf("invalid nargs %q", s)
	}
	*a = Arity(s)
	return nil
}

// UnmarshalJSON accepts both numbers and strings.
func (a *Arity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return a.UnmarshalText([]byte(s))
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid nargs %s", data)
	}
	return a.UnmarshalText([]byte(n.String()))
}

// UnmarshalYAML accepts both numbers and strings.
func (a *Arity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: nargs must be a scalar", node.Line)
	}
	return a.UnmarshalText([]byte(node.Value))
}

// Parser converts d into the parser tree used by the renderer. Each
// alias is registered as an extra choice sharing the command's parser.
func (d Description) Parser() *manpage.Parser {
	return d.parser("")
}

func (d Description) parser(defaultProg string) *manpage.Parser {
	p := &manpage.Parser{
		Prog:             d.Prog,
		ShortDescription: d.ShortDescription,
		Description:      d.Description,
		Epilog:           d.Epilog,
		Usage:            d.Usage,
		RawText:          d.RawText,
	}
	if p.Prog == "" {
		p.Prog = defaultProg
	}
	for _, g := range d.Groups {
		group := manpage.Group{Title: g.Title, Description: g.Description}
		for _, a := range g.Actions {
			group.Actions = append(group.Actions, a.action(p.Prog))
		}
		p.Groups = append(p.Groups, group)
	}
	for _, s := range d.Sections {
		p.Sections = append(p.Sections, manpage.Section{Heading: s.Heading, Body: s.Body, Preformatted: s.Preformatted})
	}
	return p
}

func (a ActionDescription) action(prog string) manpage.Action {
	action := manpage.Action{
		OptionStrings: a.Options,
		Dest:          a.Dest,
		Metavar:       a.Metavar,
		Nargs:         string(a.Nargs),
		Choices:       a.Choices,
		Help:          a.Help,
		Default:       a.Default,
		Required:      a.Required,
		IsHelp:        a.IsHelp,
	}
	if action.Dest == "" && len(a.Options) > 0 {
		action.Dest = destFromOption(a.Options)
	}
	if a.Hidden {
		action.Help = manpage.SuppressHelp
	}
	if len(a.Commands) == 0 {
		return action
	}
	sp := &manpage.Subparsers{}
	for _, c := range a.Commands {
		child := c.Parser.parser(prog + " " + c.Name)
		help := c.Help
		if c.Hidden {
			help = manpage.SuppressHelp
		}
		sp.Choices = append(sp.Choices, manpage.Choice{Name: c.Name, Help: help, Parser: child})
		for _, alias := range c.Aliases {
			sp.Choices = append(sp.Choices, manpage.Choice{Name: alias, Parser: child})
		}
	}
	action.Subparsers = sp
	return action
}

// destFromOption derives a destination from the first long option, or
// the first option when there is none: "--dry-run" becomes "dry_run".
func destFromOption(options []string) string {
	name := options[0]
	for _, opt := range options {
		if strings.HasPrefix(opt, "--") {
			name = opt
			break
		}
	}
	name = strings.TrimLeft(name, "-")
	return strings.ReplaceAll(name, "-", "_")
}

// Describe converts a parser tree into its serializable form. Choices that
// share a parser with an earlier choice become aliases of that command.
func Describe(p *manpage.Parser) Description {
	d := Description{
		Prog:             p.Prog,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Epilog:           p.Epilog,
		Usage:            p.Usage,
		RawText:          p.RawText,
	}
	for _, g := range p.Groups {
		group := GroupDescription{Title: g.Title, Description: g.Description}
		for _, a := range g.Actions {
			group.Actions = append(group.Actions, describeAction(a))
		}
		d.Groups = append(d.Groups, group)
	}
	for _, s := range p.Sections {
		d.Sections = append(d.Sections, SectionDescription{Heading: s.Heading, Body: s.Body, Preformatted: s.Preformatted})
	}
	return d
}

func describeAction(a manpage.Action) ActionDescription {
	ad := ActionDescription{
		Options:  a.OptionStrings,
		Dest:     a.Dest,
		Metavar:  a.Metavar,
		Nargs:    Arity(a.Nargs),
		Choices:  a.Choices,
		Help:     a.Help,
		Default:  a.Default,
		Required: a.Required,
		IsHelp:   a.IsHelp,
	}
	if a.Suppressed() {
		ad.Help, ad.Hidden = "", true
	}
	if a.Subparsers == nil {
		return ad
	}
	index := make(map[*manpage.Parser]int)
	for _, c := range a.Subparsers.Choices {
		if i, ok := index[c.Parser]; ok && c.Parser != nil {
			ad.Commands[i].Aliases = append(ad.Commands[i].Aliases, c.Name)
			continue
		}
		cd := CommandDescription{Name: c.Name, Help: c.Help}
		if c.Help == manpage.SuppressHelp {
			cd.Help, cd.Hidden = "", true
		}
		if c.Parser != nil {
			cd.Parser = Describe(c.Parser)
			index[c.Parser] = len(ad.Commands)
		}
		ad.Commands = append(ad.Commands, cd)
	}
	return ad
}
