package source

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentflare-ai/go-manpage/manpage"
)

// GroupAnnotation is the flag annotation that places a flag in a named
// argument group instead of the default options group.
const GroupAnnotation = "manpage_group"

// SetFlagGroup places the named flag of fs in group.
func SetFlagGroup(fs *pflag.FlagSet, name, group string) error {
	return fs.SetAnnotation(name, GroupAnnotation, []string{group})
}

// Option adjusts how a flag set or command is converted.
type Option func(*options)

type options struct {
	prog string
}

// WithProg overrides the program name. See Rename.
func WithProg(prog string) Option {
	return func(o *options) { o.prog = prog }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FromFlagSet converts a flag set into a parser with one options group,
// followed by a group per distinct GroupAnnotation value.
func FromFlagSet(fs *pflag.FlagSet, opts ...Option) *manpage.Parser {
	o := buildOptions(opts)
	prog := fs.Name()
	if o.prog != "" {
		prog = o.prog
	}
	return &manpage.Parser{
		Prog:   prog,
		Groups: flagGroups(fs, "options"),
	}
}

// flagGroups converts the flags of fs. Ungrouped flags go in a group titled
// title, which comes first; annotated groups follow in order of first use.
func flagGroups(fs *pflag.FlagSet, title string) []manpage.Group {
	groups := []manpage.Group{{Title: title}}
	index := map[string]int{title: 0}
	fs.VisitAll(func(f *pflag.Flag) {
		name := title
		if g := f.Annotations[GroupAnnotation]; len(g) > 0 && g[0] != "" {
			name = g[0]
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, manpage.Group{Title: name})
		}
		groups[i].Actions = append(groups[i].Actions, flagAction(f))
	})
	if len(groups[0].Actions) == 0 {
		groups = groups[1:]
	}
	return groups
}

func flagAction(f *pflag.Flag) manpage.Action {
	varname, usage := pflag.UnquoteUsage(f)
	a := manpage.Action{
		Dest:    strings.ReplaceAll(f.Name, "-", "_"),
		Help:    literalHelp(usage + defaultSuffix(f)),
		Default: f.DefValue,
		IsHelp:  f.Name == "help",
	}
	if f.Shorthand != "" && f.ShorthandDeprecated == "" {
		a.OptionStrings = append(a.OptionStrings, "-"+f.Shorthand)
	}
	a.OptionStrings = append(a.OptionStrings, "--"+f.Name)

	switch {
	case f.Value.Type() == "bool":
		a.Nargs = manpage.NargsNone
	case f.NoOptDefVal != "":
		a.Nargs = manpage.NargsOptional
	}
	// A backquoted name in the usage string is an explicit metavar; the
	// type names pflag falls back to are not.
	if strings.Contains(f.Usage, "`") && varname != "" {
		a.Metavar = varname
	}
	if req := f.Annotations[cobra.BashCompOneRequiredFlag]; len(req) > 0 && req[0] == "true" {
		a.Required = true
	}
	if f.Hidden || f.Deprecated != "" {
		a.Help = manpage.SuppressHelp
	}
	return a
}

// literalHelp escapes the percent signs of a flag usage string, which pflag
// never formats, so the renderer prints them as written.
func literalHelp(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// defaultSuffix mirrors the "(default ...)" note pflag prints in its own
// usage output.
func defaultSuffix(f *pflag.Flag) string {
	if isZeroDefault(f) {
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf(" (default %q)", f.DefValue)
	}
	return fmt.Sprintf(" (default %s)", f.DefValue)
}

func isZeroDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "0", "false", "[]", "<nil>", "0s", "map[]":
		return true
	}
	return false
}
