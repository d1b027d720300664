package source

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agentflare-ai/go-manpage/manpage"
)

func TestLoadFileYAML(t *testing.T) {
	p, err := LoadFile("testdata/tool.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if p.Prog != "tool" || p.ShortDescription != "manage things" {
		t.Fatalf("root = %q / %q", p.Prog, p.ShortDescription)
	}
	if got := p.Groups[1].Actions[1]; got.Dest != "dry_run" || got.Nargs != manpage.NargsNone {
		t.Errorf("dry-run action = %+v", got)
	}
	sp := p.Groups[2].Actions[0].Subparsers
	if sp == nil || len(sp.Choices) != 3 {
		t.Fatalf("choices = %+v", sp)
	}
	if sp.Choices[1].Name != "ls" || sp.Choices[1].Parser != sp.Choices[0].Parser {
		t.Errorf("alias ls should share the list parser")
	}
	if sp.Choices[0].Parser.Prog != "tool list" {
		t.Errorf("nested prog = %q, want %q", sp.Choices[0].Parser.Prog, "tool list")
	}
	if sp.Choices[2].Help != manpage.SuppressHelp {
		t.Errorf("hidden command help = %q", sp.Choices[2].Help)
	}

	doc, err := manpage.Render(p, manpage.Config{Date: "2024-01-02"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertContains(t, doc, "parallel jobs (default: 4)")
	assertContains(t, doc, `\fBpath\fR`)
	assertContains(t, doc, `\fBtool\fR \fI\,list\/\fR`)
	assertContains(t, doc, ".SH ENVIRONMENT")
	assertContains(t, doc, ".SH COMMENTS")
	assertNotContains(t, doc, `'tool debug'`)
	assertNotContains(t, doc, "show this help message")
}

func TestLoadFileTOML(t *testing.T) {
	p, err := LoadFile("testdata/tool.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := p.Groups[0].Actions[0]; got.Nargs != "2" || got.Dest != "jobs" {
		t.Errorf("jobs action = %+v", got)
	}
	sp := p.Groups[1].Actions[0].Subparsers
	if sp == nil || len(sp.Choices) != 3 {
		t.Fatalf("choices = %+v", sp)
	}
	if sp.Choices[2].Name != "l" || sp.Choices[2].Parser != sp.Choices[0].Parser {
		t.Errorf("alias l should share the list parser")
	}
	if got := sp.Choices[0].Parser.Description; got != "Lists every thing." {
		t.Errorf("nested description = %q", got)
	}
}

func TestLoadFileJSON(t *testing.T) {
	p, err := LoadFile("testdata/tool.json")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	a := p.Groups[0].Actions[0]
	if a.Nargs != manpage.NargsOptional || a.Dest != "level" {
		t.Fatalf("level action = %+v", a)
	}
	doc, err := manpage.Render(p, manpage.Config{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertContains(t, doc, `\fB\-\-level\fR \fI\,[{low,high}]\/\fR`)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   string
	}{
		{"unknown yaml key", "prog: tool\ncolour: red\n", "yaml", "colour"},
		{"unknown json key", `{"prog":"tool","colour":"red"}`, "json", "colour"},
		{"unknown toml key", "prog = \"tool\"\ncolour = \"red\"\n", "toml", "colour"},
		{"missing prog", "description: nothing\n", "yml", "no prog"},
		{"bad nargs", "prog: tool\ngroups:\n  - actions:\n      - dest: x\n        nargs: many\n", "yaml", "invalid nargs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Decode error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("{}"), ".ini")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestDescribeRoundTrip(t *testing.T) {
	want := Describe(FromCobra(newToolCmd()))
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, want, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDescribeKeepsAliases(t *testing.T) {
	d := Describe(FromCobra(newToolCmd()))
	var commands []CommandDescription
	for _, g := range d.Groups {
		for _, a := range g.Actions {
			commands = append(commands, a.Commands...)
		}
	}
	var list CommandDescription
	for _, c := range commands {
		if c.Name == "list" {
			list = c
		}
	}
	if diff := cmp.Diff([]string{"ls"}, list.Aliases); diff != "" {
		t.Fatalf("aliases (-want +got):\n%s", diff)
	}
	p := d.Parser()
	sp := commandChoices(t, p)
	byName := make(map[string]*manpage.Parser)
	for _, c := range sp.Choices {
		byName[c.Name] = c.Parser
	}
	if byName["ls"] != byName["list"] {
		t.Fatalf("rebuilt tree lost alias sharing")
	}
}
