package manpage

// SuppressHelp is the help text that hides an action or a subcommand from
// every listing and from the rendered document.
const SuppressHelp = "==SUPPRESS=="

// Value arities understood by Action.Nargs. Any other value is parsed as a
// fixed count of values.
const (
	NargsSingle     = ""
	NargsNone       = "0"
	NargsOptional   = "?"
	NargsZeroOrMore = "*"
	NargsOneOrMore  = "+"
	NargsRemainder  = "..."
)

// Parser describes one command or subcommand.
type Parser struct {
	// Prog is the program name. Nested parsers usually carry their full
	// command path ("prog sub").
	Prog string
	// ShortDescription is used in the NAME section when Config.Description
	// is empty.
	ShortDescription string
	Description      string
	// Epilog is rendered as the COMMENTS section of the top-level parser.
	Epilog string
	// Usage is the synopsis without the "usage:" prefix. When empty it is
	// synthesized from the parser's actions.
	Usage string
	// RawText keeps line breaks of descriptions and help texts instead of
	// re-filling them.
	RawText bool
	Groups  []Group
	// Sections are appended after COMMENTS when this parser is rendered
	// as the top-level document.
	Sections []Section
}

// Group is an ordered bucket of actions. An empty Title marks the
// positional-arguments bucket, whose entries render without a heading.
type Group struct {
	Title       string
	Description string
	Actions     []Action
}

// Action is a single argument or option. When Subparsers is non-nil the
// action is a subcommand dispatcher and only Help and Subparsers are used.
type Action struct {
	OptionStrings []string
	Dest          string
	Metavar       string
	Nargs         string
	Choices       []string
	Help          string
	Default       string
	Required      bool
	// IsHelp marks the built-in help option, which is never documented.
	IsHelp     bool
	Subparsers *Subparsers
}

// Subparsers fans out to child parsers. Choices are registrations in
// declaration order; an alias is a later choice that points at a Parser
// already registered under another name.
type Subparsers struct {
	Choices []Choice
}

// Choice registers Parser under Name. Help is the one-line text shown in
// the command listing; it is only meaningful on the primary registration.
type Choice struct {
	Name   string
	Help   string
	Parser *Parser
}

// Section is a free-form section appended to the document.
type Section struct {
	Heading string
	Body    string
	// Preformatted bodies are emitted between .nf and .fi without filling.
	Preformatted bool
}

// Suppressed reports whether the action is hidden from the document.
func (a Action) Suppressed() bool {
	return a.Help == SuppressHelp
}

// Positional reports whether the action has no option strings.
func (a Action) Positional() bool {
	return len(a.OptionStrings) == 0
}

// Group returns the first group titled title, or nil.
func (p *Parser) Group(title string) *Group {
	for i := range p.Groups {
		if p.Groups[i].Title == title {
			return &p.Groups[i]
		}
	}
	return nil
}

// AddSection appends a free-form section to the parser.
func (p *Parser) AddSection(heading, body string) {
	p.Sections = append(p.Sections, Section{Heading: heading, Body: body})
}
