package manpage

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Format selects the document layout.
type Format int

const (
	// Pretty starts a new top-level section for every command.
	Pretty Format = iota
	// SingleCommandsSection documents all commands as subsections of one
	// COMMANDS section.
	SingleCommandsSection
)

// String returns the command-line spelling of the format.
func (f Format) String() string {
	switch f {
	case Pretty:
		return "pretty"
	case SingleCommandsSection:
		return "single-commands-section"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "pretty" or "single-commands-section". The empty
// string selects Pretty.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimSpace(s) {
	case "", "pretty":
		return Pretty, nil
	case "single-commands-section":
		return SingleCommandsSection, nil
	default:
		return Pretty, fmt.Errorf("unknown format %q (want pretty or single-commands-section)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Defaults used when the corresponding Config field is empty.
const (
	DefaultSection     = "1"
	DefaultManualTitle = "User Commands"
)

// DateLayout is the layout of the date in the .TH line.
const DateLayout = "2006-01-02"

// Config holds the document metadata for a single render.
type Config struct {
	Format Format
	// Section is the manual section, "1" by default.
	Section string
	// ManualTitle is the fifth .TH field, "User Commands" by default.
	ManualTitle string
	// Date defaults to BuildDate().
	Date string
	// ProjectName is the source shown in the header and the DISTRIBUTION
	// section. The parser's prog is used when empty.
	ProjectName string
	Version     string
	// Description is the one-line description of the NAME section.
	Description   string
	Authors       []string
	URL           string
	ExtraSections []Section
}

func (c Config) section() string {
	if c.Section == "" {
		return DefaultSection
	}
	return c.Section
}

func (c Config) manualTitle() string {
	if c.ManualTitle == "" {
		return DefaultManualTitle
	}
	return c.ManualTitle
}

func (c Config) date() string {
	if c.Date == "" {
		return BuildDate()
	}
	return c.Date
}

func (c Config) source(prog string) string {
	source := c.ProjectName
	if source == "" {
		source = prog
	}
	if c.Version != "" {
		source += " " + c.Version
	}
	return source
}

// SourceDateEpochEnv names the environment variable that pins the document
// date for reproducible builds.
const SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

// BuildDate returns the document date: SOURCE_DATE_EPOCH when it holds a
// valid Unix timestamp, the current time otherwise. The date is in UTC.
func BuildDate() string {
	return buildDate(os.Getenv(SourceDateEpochEnv), time.Now)
}

func buildDate(epoch string, now func() time.Time) string {
	if epoch != "" {
		if secs, err := strconv.ParseInt(strings.TrimSpace(epoch), 10, 64); err == nil {
			return time.Unix(secs, 0).UTC().Format(DateLayout)
		}
	}
	return now().UTC().Format(DateLayout)
}
