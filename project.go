package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultProjectFile = "manpage.toml"

type projectFile struct {
	Metadata projectMetadata `toml:"metadata"`
	Pages    []pageEntry     `toml:"manpage"`
	// Manpages holds one "output:key=value:..." spec per line.
	Manpages string `toml:"manpages"`
}

type projectMetadata struct {
	ProjectName   string   `toml:"project_name"`
	Prog          string   `toml:"prog"`
	Version       string   `toml:"version"`
	URL           string   `toml:"url"`
	Description   string   `toml:"description"`
	Authors       []string `toml:"authors"`
	Author        string   `toml:"author"`
	AuthorEmail   string   `toml:"author_email"`
	ManualSection string   `toml:"manual_section"`
	ManualTitle   string   `toml:"manual_title"`
	Format        string   `toml:"format"`
}

type pageEntry struct {
	Output   string `toml:"output"`
	Package  string `toml:"package"`
	File     string `toml:"file"`
	Function string `toml:"function"`
	Object   string `toml:"object"`
	Format   string `toml:"format"`
	Prog     string `toml:"prog"`
}

func (e pageEntry) target() pageTarget {
	return pageTarget{pkg: e.Package, file: e.File, function: e.Function, object: e.Object}
}

func (e pageEntry) settings() settings {
	return settings{format: e.Format, prog: e.Prog}
}

// settings maps the metadata table. Authors fall back to "author <email>"
// and prog falls back to the project name.
func (m projectMetadata) settings() settings {
	s := settings{
		projectName: m.ProjectName,
		prog:        m.Prog,
		version:     m.Version,
		description: m.Description,
		authors:     m.Authors,
		url:         m.URL,
		format:      m.Format,
		section:     m.ManualSection,
		manualTitle: m.ManualTitle,
	}
	if len(s.authors) == 0 && m.Author != "" {
		author := m.Author
		if m.AuthorEmail != "" {
			author += " <" + m.AuthorEmail + ">"
		}
		s.authors = []string{author}
	}
	if s.prog == "" {
		s.prog = m.ProjectName
	}
	return s
}

type project struct {
	path  string
	dir   string
	meta  projectMetadata
	pages []pageEntry
}

func loadProject(path string) (*project, error) {
	var f projectFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	pages := f.Pages
	if strings.TrimSpace(f.Manpages) != "" {
		legacy, err := parseManpagesSpec(f.Manpages)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		pages = append(pages, legacy...)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: no man pages configured", path)
	}
	seen := make(map[string]bool, len(pages))
	for i, pg := range pages {
		switch {
		case pg.Output == "":
			return nil, fmt.Errorf("%s: man page %d has no output", path, i+1)
		case pg.Output == "-":
			return nil, fmt.Errorf("%s: man page %d must be written to a file", path, i+1)
		case seen[pg.Output]:
			return nil, fmt.Errorf("%s: duplicate output %q", path, pg.Output)
		}
		seen[pg.Output] = true
		if err := pg.target().validate(); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, pg.Output, err)
		}
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return &project{path: path, dir: dir, meta: f.Metadata, pages: pages}, nil
}

// resolve merges flags, page entries and metadata into the pages to build.
// When only is non-empty it selects pages by output.
func (p *project) resolve(cli settings, only []string) ([]page, error) {
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}
	base := p.meta.settings()
	var pages []page
	for _, entry := range p.pages {
		if len(only) > 0 && !wanted[entry.Output] {
			continue
		}
		delete(wanted, entry.Output)
		output := entry.Output
		if !filepath.IsAbs(output) {
			output = filepath.Join(p.dir, output)
		}
		pages = append(pages, page{
			name:     entry.Output,
			output:   output,
			target:   entry.target(),
			settings: cli.over(entry.settings().over(base)),
			dir:      p.dir,
		})
	}
	for _, name := range only {
		if wanted[name] {
			return nil, fmt.Errorf("%s: no man page with output %q", p.path, name)
		}
	}
	return pages, nil
}

// parseManpagesSpec parses the single-string page list: one page per line,
// the output path followed by colon separated key=value options, such as
// "man/tool.1:package=./cmd/tool:function=newRootCmd:format=pretty".
func parseManpagesSpec(spec string) ([]pageEntry, error) {
	var pages []pageEntry
	for _, line := range strings.Split(spec, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		pg := pageEntry{Output: fields[0]}
		seen := make(map[string]bool)
		for _, field := range fields[1:] {
			key, value, ok := strings.Cut(field, "=")
			if !ok {
				return nil, fmt.Errorf("%s: option %q is not key=value", pg.Output, field)
			}
			class := key
			switch key {
			case "package", "file":
				class = "source"
			case "function", "object":
				class = "target"
			}
			if seen[class] {
				return nil, fmt.Errorf("%s: option %q given twice", pg.Output, key)
			}
			seen[class] = true
			switch key {
			case "package":
				pg.Package = value
			case "file":
				pg.File = value
			case "function":
				pg.Function = value
			case "object":
				pg.Object = value
			case "format":
				pg.Format = value
			case "prog":
				pg.Prog = value
			default:
				return nil, fmt.Errorf("%s: unknown option %q", pg.Output, key)
			}
		}
		pages = append(pages, pg)
	}
	if len(pages) == 0 {
		return nil, errors.New("manpages is empty")
	}
	return pages, nil
}
