// # go-manpage
//
// `go-manpage` generates manual pages in the roff `man` format from the
// command-line definitions a Go program already has, so the page never drifts
// from `--help`. The rendering itself lives in the `manpage` package; the
// `source` package turns cobra command trees, pflag flag sets and description
// files into the tree `manpage` renders.
//
// Key capabilities:
//
//   - document a `*cobra.Command` or `*pflag.FlagSet` returned by a function or
//     held in a package-level variable (`--package` with `--function` or
//     `--object`), including `package main` commands.
//   - document a YAML, TOML or JSON description file (`--file`).
//   - render subcommands either as one section per command (`pretty`) or as
//     subsections of a single COMMANDS section (`single-commands-section`).
//   - list aliases, skip hidden flags and commands, and keep argument groups.
//   - generate every page of a project from `manpage.toml` with `build`.
//   - honor `SOURCE_DATE_EPOCH` for reproducible page dates.
//
// ## Usage
//
//	go-manpage --package ./cmd/tool --function newRootCmd -o man/tool.1
//	go-manpage --file tool.yaml --format single-commands-section
//
// The target module must require `github.com/agentflare-ai/go-manpage`: the
// command tree is extracted by a generated test that is overlaid onto the
// package and run with `go test`, so nothing is written into the source tree.
//
// ## Supported Flags
//
//   - `--package PATTERN`: Go package holding the command or flag set.
//   - `--function NAME` / `--object NAME`: a function taking no arguments that
//     returns the command (optionally with an error), or a package variable.
//   - `--file FILE`: a description file instead of a Go package.
//   - `--prog`, `--project-name`, `--version`, `--description`, `--author`,
//     `--url`: page metadata.
//   - `--manual-section` (default 1), `--manual-title` (default
//     "User Commands"), `--date`.
//   - `--format pretty|single-commands-section`.
//   - `-o FILE`: output path; `-` writes to stdout, a directory receives
//     `<prog>.<section>`.
//
// ## Project Builds
//
// `go-manpage build` reads `manpage.toml`:
//
//	[metadata]
//	project_name = "tool"
//	version = "1.2.0"
//	author = "Jane Doe"
//	author_email = "jane@example.com"
//	url = "https://example.com/tool"
//
//	[[manpage]]
//	output = "man/tool.1"
//	package = "./cmd/tool"
//	function = "newRootCmd"
//
// Pages may also be listed in a single `manpages` string, one
// `output:key=value:...` entry per line. Flags override page entries, which
// override `[metadata]`. Pages are generated in parallel and each one is
// announced on stderr as `generating <output>`.
//
// ## Shell Completion and CLI Docs
//
//	go-manpage completion bash > /usr/local/etc/bash_completion.d/go-manpage
//	go-manpage gen-docs ./docs/cli
//	go-manpage gen-docs --type man ./man
//
// The man page of go-manpage itself is rendered by go-manpage.
package main
