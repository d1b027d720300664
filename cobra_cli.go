package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"

	"github.com/agentflare-ai/go-manpage/manpage"
	"github.com/agentflare-ai/go-manpage/source"
)

const rootLongDesc = `
go-manpage builds manual pages in the roff man format from the command-line
definitions a Go program already has. It reads:

  • a cobra command tree or a pflag flag set, returned by a function or held
    in a package-level variable of a Go package (--package with --function or
    --object)
  • a YAML, TOML or JSON description of the parser tree (--file)

Subcommands, aliases, argument groups and hidden options are rendered the way
man(7) expects. Use the build command to generate every page listed in a
manpage.toml file, for example from a release workflow.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "go-manpage [flags]",
		Short:         "Generate man pages from Go command-line definitions",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVar(&app.opts.target.pkg, "package", "", "load the parser from Go package `PATTERN`, such as ./cmd/tool")
	flags.StringVar(&app.opts.target.file, "file", "", "load the parser from a YAML, TOML or JSON description `FILE`")
	flags.StringVar(&app.opts.target.function, "function", "", "call `FUNCTION` in the package to obtain a *cobra.Command or *pflag.FlagSet")
	flags.StringVar(&app.opts.target.object, "object", "", "use the package-level variable `OBJECT` as the command or flag set")
	flags.StringVarP(&app.opts.outputPath, "output", "o", "-", "write the page to `FILE`, or into a directory as <prog>.<section>")
	cmd.MarkFlagsMutuallyExclusive("package", "file")
	cmd.MarkFlagsOneRequired("package", "file")
	cmd.MarkFlagsMutuallyExclusive("function", "object")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	persistent := cmd.PersistentFlags()
	addMetadataFlags(persistent, &app.opts)
	persistent.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log debug information to stderr")
	persistent.BoolVar(&app.opts.noColor, "no-color", false, "disable colored status output")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		app.log = newLogger(app.stderr, app.opts.verbose)
		app.status = newStatusPrinter(app.stderr, app.opts.noColor)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx)
	}

	cmd.AddCommand(newBuildCmd(app))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func addMetadataFlags(flags *pflag.FlagSet, opts *options) {
	m := &opts.meta
	flags.StringVar(&m.projectName, "project-name", "", "name of the project the program is part of")
	flags.StringVar(&m.prog, "prog", "", "program name to use instead of the one the parser declares")
	flags.StringVar(&m.version, "version", "", "program version, shown in the page header")
	flags.StringVar(&m.description, "description", "", "one-line description for the NAME section, after \"prog - \"")
	flags.StringVar(&opts.longDesc, "long-description", "", "accepted for compatibility and ignored")
	flags.StringArrayVar(&m.authors, "author", nil, "program `AUTHOR`; may be repeated")
	flags.StringArrayVar(&opts.authorEmails, "author-email", nil, "added to the authors")
	flags.StringVar(&m.url, "url", "", "link to the project's homepage")
	flags.StringVar(&m.format, "format", "", "page layout: pretty or single-commands-section (default pretty)")
	flags.StringVar(&m.section, "manual-section", "", "manual section (default 1), see man-pages(7)")
	flags.StringVar(&m.manualTitle, "manual-title", "", "manual title (default \"User Commands\")")
	flags.StringVar(&m.date, "date", "", "page date (default $SOURCE_DATE_EPOCH or today)")
	_ = flags.MarkHidden("long-description")
	_ = flags.MarkHidden("author-email")
}

func newBuildCmd(app *cliApp) *cobra.Command {
	var (
		configPath string
		jobs       int
	)
	cmd := &cobra.Command{
		Use:   "build [output...]",
		Short: "Generate the man pages listed in manpage.toml",
		Long: strings.TrimSpace(`
Generate every man page configured in a manpage.toml file, or only the pages
whose output is named. Pages come from [[manpage]] tables:

  [metadata]
  project_name = "tool"
  version = "1.2.0"
  authors = ["Jane Doe <jane@example.com>"]

  [[manpage]]
  output = "man/tool.1"
  package = "./cmd/tool"
  function = "newRootCmd"

A single manpages string with one "output:key=value:..." entry per line is
accepted as well. Flags given on the command line override both tables.
`),
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeBuildOutputs,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", defaultProjectFile, "project configuration `FILE`")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of pages generated in parallel")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.build(ctx, configPath, jobs, args)
	}
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: strings.TrimSpace(`
Print a completion script for go-manpage. Besides flags and subcommands, the
script completes --format with the page layouts and the build command with
the outputs listed in ./manpage.toml.

  go-manpage completion bash > /usr/local/etc/bash_completion.d/go-manpage
  go-manpage completion zsh > "${fpath[1]}/_go-manpage"
  go-manpage completion fish | source
`),
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		default:
			return root.GenPowerShellCompletionWithDesc(out)
		}
	}
	return cmd
}

// completeFormats offers the page layouts for --format.
func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		manpage.Pretty.String() + "\tone section per command",
		manpage.SingleCommandsSection.String() + "\tall commands under COMMANDS",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeBuildOutputs offers the outputs configured in the project file
// that are not on the command line yet.
func completeBuildOutputs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	configPath, _ := cmd.Flags().GetString("config")
	proj, err := loadProject(configPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	given := make(map[string]bool, len(args))
	for _, a := range args {
		given[a] = true
	}
	var outputs []string
	for _, entry := range proj.pages {
		if !given[entry.Output] {
			outputs = append(outputs, entry.Output)
		}
	}
	return outputs, cobra.ShellCompDirectiveNoFileComp
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	var docType string
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate reference docs for the CLI",
		Long: strings.TrimSpace(`
Write reference docs for go-manpage itself: one Markdown file per command, or
a single man page rendered by go-manpage.

Example:

  go-manpage gen-docs ./docs/cli
  go-manpage gen-docs --type man ./man
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&docType, "type", "markdown", "docs type: markdown or man")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		switch docType {
		case "markdown":
			return cobradoc.GenMarkdownTree(root, target)
		case "man":
			doc, err := manpage.Render(source.FromCobra(root), manpage.Config{
				Version: Version,
				URL:     "https://github.com/agentflare-ai/go-manpage",
			})
			if err != nil {
				return err
			}
			return writeOutput(filepath.Join(target, root.Name()+"."+manpage.DefaultSection), nil, []byte(doc))
		default:
			return fmt.Errorf("unsupported docs type %q", docType)
		}
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the go-manpage version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "go-manpage", Version)
		},
	}
}
