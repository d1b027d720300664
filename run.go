package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentflare-ai/go-manpage/manpage"
	"github.com/agentflare-ai/go-manpage/source"
)

type options struct {
	target       pageTarget
	meta         settings
	authorEmails []string
	longDesc     string
	outputPath   string
	verbose      bool
	noColor      bool
}

// cliSettings returns the metadata given on the command line.
func (o options) cliSettings() settings {
	s := o.meta
	if len(o.authorEmails) > 0 {
		s.authors = append(append([]string{}, s.authors...), o.authorEmails...)
	}
	return s
}

// pageTarget says where a page's parser comes from: a Go package with a
// function or object in it, or a description file.
type pageTarget struct {
	pkg      string
	file     string
	function string
	object   string
}

func (t pageTarget) validate() error {
	switch {
	case t.pkg == "" && t.file == "":
		return errors.New("one of package or file is required")
	case t.pkg != "" && t.file != "":
		return errors.New("package and file are mutually exclusive")
	case t.function != "" && t.object != "":
		return errors.New("function and object are mutually exclusive")
	case t.file != "" && (t.function != "" || t.object != ""):
		return errors.New("function and object only apply to packages")
	case t.pkg != "" && t.function == "" && t.object == "":
		return errors.New("a package needs a function or an object")
	}
	return nil
}

// page is one manual page to generate.
type page struct {
	// name is the output as configured, used in status lines.
	name     string
	output   string
	target   pageTarget
	settings settings
	// dir resolves relative package patterns and description files.
	dir string
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	log    *slog.Logger
	status *statusPrinter
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.opts.target.validate(); err != nil {
		return err
	}
	if app.opts.longDesc != "" {
		app.log.Debug("ignoring --long-description; the parser description is used instead")
	}
	_, err := app.generate(ctx, page{
		name:     app.opts.outputPath,
		output:   app.opts.outputPath,
		target:   app.opts.target,
		settings: app.opts.cliSettings(),
	})
	return err
}

// generate loads, renders and writes one page, returning where it went.
func (app *cliApp) generate(ctx context.Context, pg page) (string, error) {
	cfg, err := pg.settings.config()
	if err != nil {
		return "", err
	}
	p, err := loadParser(ctx, pg.target, pg.settings.prog, pg.dir)
	if err != nil {
		return "", err
	}
	app.log.Debug("loaded parser", "page", pg.name, "prog", p.Prog, "format", cfg.Format.String())

	doc, err := manpage.Render(p, cfg)
	if err != nil {
		return "", err
	}
	section := cfg.Section
	if section == "" {
		section = manpage.DefaultSection
	}
	path := resolveOutput(pg.output, p.Prog, section)
	if err := writeOutput(path, app.stdout, []byte(doc)); err != nil {
		return "", err
	}
	app.log.Debug("wrote page", "path", path, "bytes", len(doc))
	return path, nil
}

func loadParser(ctx context.Context, t pageTarget, prog, dir string) (*manpage.Parser, error) {
	if t.file != "" {
		path := t.file
		if dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		p, err := source.LoadFile(path)
		if err != nil {
			return nil, err
		}
		source.Rename(p, prog)
		return p, nil
	}
	return source.LoadPackage(ctx, source.PackageTarget{
		Pattern:  t.pkg,
		Function: t.function,
		Object:   t.object,
		Prog:     prog,
		Dir:      dir,
	})
}

// resolveOutput maps a directory destination to "<prog>.<section>" inside
// it. Spaces in a nested command path become dashes.
func resolveOutput(path, prog, section string) string {
	if !wantsDirectoryOutput(path) {
		return path
	}
	name := strings.ReplaceAll(prog, " ", "-") + "." + section
	return filepath.Join(path, name)
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// wantsDirectoryOutput reports whether path names an existing directory or
// ends in a path separator.
func wantsDirectoryOutput(path string) bool {
	if path == "" || path == "-" {
		return false
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (app *cliApp) build(ctx context.Context, configPath string, jobs int, only []string) error {
	proj, err := loadProject(configPath)
	if err != nil {
		return err
	}
	pages, err := proj.resolve(app.opts.cliSettings(), only)
	if err != nil {
		return err
	}
	app.log.Debug("building pages", "config", configPath, "pages", len(pages), "jobs", jobs)
	return buildPages(ctx, pages, jobs, func(ctx context.Context, pg page) error {
		app.status.Printf("generating", "%s", pg.name)
		if _, err := app.generate(ctx, pg); err != nil {
			return fmt.Errorf("%s: %w", pg.name, err)
		}
		return nil
	})
}
