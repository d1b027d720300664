package source

import (
	"strings"

	"github.com/agentflare-ai/go-manpage/manpage"
)

// Rename replaces the program name of p and every parser below it. The old
// name is replaced wherever it starts a prog or a usage line, so nested
// command paths such as "tool remote add" follow the root.
func Rename(p *manpage.Parser, prog string) {
	if p == nil || prog == "" || p.Prog == prog {
		return
	}
	old := p.Prog
	replace := func(s string) string {
		if s == old || strings.HasPrefix(s, old+" ") {
			return prog + strings.TrimPrefix(s, old)
		}
		return s
	}
	seen := make(map[*manpage.Parser]bool)
	var walk func(*manpage.Parser)
	walk = func(q *manpage.Parser) {
		if q == nil || seen[q] {
			return
		}
		seen[q] = true
		q.Prog = replace(q.Prog)
		q.Usage = replace(q.Usage)
		for _, g := range q.Groups {
			for _, a := range g.Actions {
				if a.Subparsers == nil {
					continue
				}
				for _, c := range a.Subparsers.Choices {
					walk(c.Parser)
				}
			}
		}
	}
	walk(p)
}
