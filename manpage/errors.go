package manpage

import "errors"

var (
	// ErrInvalidParser reports a parser description that breaks a
	// structural rule, such as a group that mixes a subcommand dispatcher
	// with ordinary actions.
	ErrInvalidParser = errors.New("invalid parser description")

	// ErrTooDeep reports a subcommand tree deeper than MaxDepth, which
	// usually means a parser registers itself as its own subcommand.
	ErrTooDeep = errors.New("parser tree too deep, possibly cyclic")
)

// MaxDepth bounds subcommand nesting.
const MaxDepth = 64
