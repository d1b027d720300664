package main

import (
	"github.com/agentflare-ai/go-manpage/manpage"
)

// settings is the page metadata gathered from flags, manpage.toml pages
// and the [metadata] table. Empty fields are unset.
type settings struct {
	projectName string
	prog        string
	version     string
	description string
	authors     []string
	url         string
	format      string
	section     string
	manualTitle string
	date        string
}

// over returns s with every unset field taken from base.
func (s settings) over(base settings) settings {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	merged := settings{
		projectName: pick(s.projectName, base.projectName),
		prog:        pick(s.prog, base.prog),
		version:     pick(s.version, base.version),
		description: pick(s.description, base.description),
		authors:     s.authors,
		url:         pick(s.url, base.url),
		format:      pick(s.format, base.format),
		section:     pick(s.section, base.section),
		manualTitle: pick(s.manualTitle, base.manualTitle),
		date:        pick(s.date, base.date),
	}
	if len(merged.authors) == 0 {
		merged.authors = base.authors
	}
	return merged
}

// config converts s into a render configuration.
func (s settings) config() (manpage.Config, error) {
	format, err := manpage.ParseFormat(s.format)
	if err != nil {
		return manpage.Config{}, err
	}
	return manpage.Config{
		Format:      format,
		Section:     s.section,
		ManualTitle: s.manualTitle,
		Date:        s.date,
		ProjectName: s.projectName,
		Version:     s.version,
		Description: s.description,
		Authors:     s.authors,
		URL:         s.url,
	}, nil
}
