// Package manpage renders a command-line parser description as a manual
// page in the roff man macro dialect.
//
// The input is a tree of [Parser] values: each parser holds ordered
// [Group]s of [Action]s, and an action with [Subparsers] fans out to child
// parsers. [Render] walks the tree once and returns the whole document:
//
//	.TH PROG "1" "2024-01-02" "prog 1.0" "User Commands"
//	.SH NAME
//	.SH SYNOPSIS
//	.SH DESCRIPTION
//	.SH OPTIONS            (one section per argument group)
//	.SH COMMANDS           (subcommand listing, then one section per command)
//	.SH COMMENTS           (the parser epilog)
//	.SH <extra sections>
//	.SH AUTHORS
//	.SH DISTRIBUTION
//
// Two layouts are supported. [Pretty] gives every subcommand its own
// top-level section labeled with the quoted command path. [SingleCommandsSection]
// keeps all commands under one section and renders each as an indented
// subsection.
//
// A subcommand registered under several names is documented once under the
// first name it was registered with; later names are listed as aliases.
// Actions and commands whose help is [SuppressHelp] are left out entirely.
//
// Rendering performs no I/O and keeps no state, so it is safe to call
// concurrently on trees that are not being modified.
package manpage
