package manpage

import (
	"fmt"
	"io"
	"strings"
)

type renderer struct {
	format Format
	prog   string
}

// Render formats p as a complete man page. The result ends with exactly one
// newline. On error no document is returned.
func Render(p *Parser, cfg Config) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: nil parser", ErrInvalidParser)
	}
	r := &renderer{format: cfg.Format, prog: p.Prog}

	// .TH title section date source manual, see man-pages(7).
	lines := []string{fmt.Sprintf(`.TH %s "%s" "%s" "%s" "%s"`,
		Escape(strings.ToUpper(p.Prog)),
		cfg.section(),
		Escape(cfg.date()),
		Escape(cfg.source(p.Prog)),
		Escape(cfg.manualTitle()),
	)}

	lines = append(lines, ".SH NAME", Escape(nameLine(p, cfg)))

	if synopsis := strings.Fields(p.usage()); len(synopsis) > 0 {
		lines = append(lines,
			".SH SYNOPSIS",
			".B "+Escape(synopsis[0]),
			strings.Join(synopsis[1:], " "),
		)
	}

	body, err := r.formatParser(p, "", nil, "", 0)
	if err != nil {
		return "", err
	}
	lines = append(lines, body...)

	if p.Epilog != "" {
		lines = append(lines, "", ".SH COMMENTS", formatText(p.Epilog, p.RawText))
	}

	for _, s := range p.Sections {
		lines = append(lines, formatSection(s, p.RawText)...)
	}
	for _, s := range cfg.ExtraSections {
		lines = append(lines, formatSection(s, false)...)
	}

	lines = append(lines, "")
	lines = append(lines, footer(p, cfg)...)
	return strings.Trim(strings.Join(lines, "\n"), "\n") + "\n", nil
}

// Write renders p and writes the document to w.
func Write(w io.Writer, p *Parser, cfg Config) error {
	doc, err := Render(p, cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc)
	return err
}

func nameLine(p *Parser, cfg Config) string {
	desc := cfg.Description
	if desc == "" {
		desc = p.ShortDescription
	}
	if desc == "" {
		return p.Prog
	}
	return p.Prog + " - " + desc
}

func formatSection(s Section, raw bool) []string {
	lines := []string{".SH " + Escape(strings.ToUpper(s.Heading))}
	if s.Preformatted {
		return append(lines, ".nf", formatText(s.Body, true), ".fi")
	}
	return append(lines, formatText(s.Body, raw))
}

// footer returns the AUTHORS and DISTRIBUTION sections.
func footer(p *Parser, cfg Config) []string {
	var lines []string
	if len(cfg.Authors) > 0 {
		lines = append(lines, ".SH AUTHORS")
		for _, author := range cfg.Authors {
			lines = append(lines, ".nf", Escape(author), ".fi")
		}
	}
	if cfg.URL != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		project := cfg.ProjectName
		if project == "" {
			project = p.Prog
		}
		lines = append(lines,
			".SH DISTRIBUTION",
			"The latest version of "+Escape(project)+" may be downloaded from",
			".UR "+Escape(cfg.URL),
			".UE",
		)
	}
	return lines
}
