package main

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileManpage(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--file", "testdata/tool.yaml", "--date", "2024-01-02"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, `.TH TOOL "1" "2024\-01\-02" "tool" "User Commands"`)
	assertContains(t, out, ".SH NAME\ntool \\- manage things")
	assertContains(t, out, ".SH SYNOPSIS\n.B tool\n")
	assertContains(t, out, `\fB\-n\fR, \fB\-\-dry\-run\fR`)
	assertContains(t, out, `.SH COMMAND \fI\,'tool list'\/\fR`)
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("document must end with exactly one newline")
	}
}

func TestMetadataFlags(t *testing.T) {
	var buf bytes.Buffer
	args := []string{
		"--file", "testdata/tool.yaml",
		"--date", "2024-01-02",
		"--project-name", "toolkit",
		"--prog", "tk",
		"--version", "1.2",
		"--description", "the toolkit",
		"--author", "Jane Doe",
		"--author-email", "jane@example.com",
		"--url", "https://example.com",
		"--manual-section", "8",
		"--manual-title", "Admin Manual",
		"--long-description", "ignored",
		"--format", "single-commands-section",
	}
	if err := run(args, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, `.TH TK "8" "2024\-01\-02" "toolkit 1.2" "Admin Manual"`)
	assertContains(t, out, ".SH NAME\ntk \\- the toolkit")
	assertContains(t, out, ".SH AUTHORS\n.nf\nJane Doe\n.fi\n.nf\njane@example.com\n.fi")
	assertContains(t, out, "The latest version of toolkit may be downloaded from\n.UR https://example.com\n.UE")
	assertContains(t, out, `.SS \fBtk list (ls)\fR`)
	if strings.Contains(out, "ignored") {
		t.Fatalf("long description should not be rendered")
	}
}

func TestOutputFlagWritesFile(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "man", "tool.1")
	if err := run([]string{"-o", target, "--file", "testdata/tool.yaml"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertContains(t, string(content), ".SH DESCRIPTION")
}

func TestDirectoryOutputUsesProgAndSection(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"-o", tmp, "--manual-section", "8", "--file", "testdata/tool.yaml"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "tool.8")); err != nil {
		t.Fatalf("expected tool.8 in %s: %v", tmp, err)
	}
}

func TestInvalidInvocations(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no source", []string{}, "package file"},
		{"both sources", []string{"--package", ".", "--file", "x.yaml", "--function", "f"}, "package file"},
		{"function and object", []string{"--package", ".", "--function", "f", "--object", "o"}, "function object"},
		{"package without target", []string{"--package", "."}, "function or an object"},
		{"file with function", []string{"--file", "testdata/tool.yaml", "--function", "f"}, "only apply to packages"},
		{"unknown format", []string{"--file", "testdata/tool.yaml", "--format", "fancy"}, `unknown format "fancy"`},
		{"missing file", []string{"--file", "testdata/missing.yaml"}, "missing.yaml"},
		{"positional argument", []string{"--file", "testdata/tool.yaml", "extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, io.Discard, io.Discard)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestBuildCommand(t *testing.T) {
	tmp := t.TempDir()
	copyFile(t, "testdata/manpage.toml", filepath.Join(tmp, "manpage.toml"))
	copyFile(t, "testdata/tool.yaml", filepath.Join(tmp, "tool.yaml"))

	var stderr bytes.Buffer
	args := []string{"build", "--no-color", "--date", "2024-01-02", "--config", filepath.Join(tmp, "manpage.toml")}
	if err := run(args, io.Discard, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, stderr.String(), "generating man/tool.1\n")
	assertContains(t, stderr.String(), "generating man/legacy.1\n")

	tool, err := os.ReadFile(filepath.Join(tmp, "man", "tool.1"))
	if err != nil {
		t.Fatalf("read tool.1: %v", err)
	}
	assertContains(t, string(tool), `.TH TOOL "1" "2024\-01\-02" "toolkit 2.0.0" "Toolkit Manual"`)
	assertContains(t, string(tool), ".SH AUTHORS\n.nf\nJane Doe <jane@example.com>\n.fi")
	assertContains(t, string(tool), ".UR https://example.com/toolkit")

	legacy, err := os.ReadFile(filepath.Join(tmp, "man", "legacy.1"))
	if err != nil {
		t.Fatalf("read legacy.1: %v", err)
	}
	assertContains(t, string(legacy), `.SS \fBlegacy list (ls)\fR`)
}

func TestBuildSelectsPages(t *testing.T) {
	tmp := t.TempDir()
	copyFile(t, "testdata/manpage.toml", filepath.Join(tmp, "manpage.toml"))
	copyFile(t, "testdata/tool.yaml", filepath.Join(tmp, "tool.yaml"))
	config := filepath.Join(tmp, "manpage.toml")

	if err := run([]string{"build", "--no-color", "-c", config, "man/legacy.1"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "man", "tool.1")); !os.IsNotExist(err) {
		t.Fatalf("tool.1 should not be built, stat err = %v", err)
	}
	err := run([]string{"build", "--no-color", "-c", config, "man/nope.1"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), `"man/nope.1"`) {
		t.Fatalf("err = %v, want unknown page error", err)
	}
}

func TestParseManpagesSpec(t *testing.T) {
	got, err := parseManpagesSpec(`
man/a.1:package=./cmd/a:function=newRootCmd:format=single-commands-section
man/b.1:file=b.toml:prog=bee
`)
	if err != nil {
		t.Fatalf("parseManpagesSpec: %v", err)
	}
	want := []pageEntry{
		{Output: "man/a.1", Package: "./cmd/a", Function: "newRootCmd", Format: "single-commands-section"},
		{Output: "man/b.1", File: "b.toml", Prog: "bee"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pages (-want +got):\n%s", diff)
	}
}

func TestParseManpagesSpecErrors(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"man/a.1:function", "not key=value"},
		{"man/a.1:package=a:file=b", "given twice"},
		{"man/a.1:function=f:object=o", "given twice"},
		{"man/a.1:module=x", "unknown option"},
		{"\n  \n", "empty"},
	}
	for _, tt := range tests {
		_, err := parseManpagesSpec(tt.spec)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("parseManpagesSpec(%q) = %v, want mention of %q", tt.spec, err, tt.want)
		}
	}
}

func TestLoadProjectErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no pages", "[metadata]\nversion = \"1\"\n", "no man pages"},
		{"unknown key", "[metadata]\ncolour = \"red\"\n", "colour"},
		{"stdout page", "[[manpage]]\noutput = \"-\"\nfile = \"a.yaml\"\n", "written to a file"},
		{"duplicate", "[[manpage]]\noutput = \"a.1\"\nfile = \"a.yaml\"\n[[manpage]]\noutput = \"a.1\"\nfile = \"b.yaml\"\n", "duplicate"},
		{"no target", "[[manpage]]\noutput = \"a.1\"\npackage = \"./cmd/a\"\n", "function or an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manpage.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := loadProject(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSettingsPrecedence(t *testing.T) {
	meta := projectMetadata{
		ProjectName: "toolkit",
		Version:     "1.0",
		Author:      "Jane",
		AuthorEmail: "jane@example.com",
		Format:      "single-commands-section",
	}.settings()
	page := pageEntry{Format: "pretty"}.settings()
	cli := settings{version: "2.0"}

	got := cli.over(page.over(meta))
	want := settings{
		projectName: "toolkit",
		prog:        "toolkit",
		version:     "2.0",
		authors:     []string{"Jane <jane@example.com>"},
		format:      "pretty",
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(settings{})); diff != "" {
		t.Fatalf("settings (-want +got):\n%s", diff)
	}
}

func TestHelpFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "go-manpage [flags]")
	assertContains(t, out, "--package PATTERN")
	assertContains(t, out, "build       Generate the man pages listed in manpage.toml")
	if strings.Contains(out, "--author-email") {
		t.Fatalf("hidden flag listed in help")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"version"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := buf.String(), "go-manpage "+Version+"\n"; got != want {
		t.Fatalf("version = %q, want %q", got, want)
	}
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"completion", "bash"}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected completion output")
	}
	assertContains(t, buf.String(), "__start_go-manpage")
}

func TestCompleteBuildOutputs(t *testing.T) {
	tmp := t.TempDir()
	config := filepath.Join(tmp, "manpage.toml")
	copyFile(t, "testdata/manpage.toml", config)

	var buf bytes.Buffer
	if err := run([]string{"__complete", "build", "-c", config, "man/legacy.1", ""}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := buf.String()
	assertContains(t, got, "man/tool.1\n")
	if strings.Contains(got, "man/legacy.1") {
		t.Fatalf("given output offered again:\n%s", got)
	}
}

func TestCompleteFormatFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"__complete", "--file", "tool.yaml", "--format", ""}, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, buf.String(), "single-commands-section\tall commands under COMMANDS")
}

func TestGenDocsCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", tmp}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "go-manpage.md")); err != nil {
		t.Fatalf("expected go-manpage.md in docs output: %v", err)
	}
}

func TestGenDocsManPage(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", "--type", "man", tmp}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(tmp, "go-manpage.1"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	out := string(content)
	assertContains(t, out, `.TH GO\-MANPAGE "1"`)
	assertContains(t, out, ".SH\nCOMMANDS\n")
	assertContains(t, out, `\fBgo\-manpage\fR \fI\,build\/\fR`)
	assertContains(t, out, `.SH COMMAND \fI\,'go\-manpage build'\/\fR`)
	assertContains(t, out, `\fB\-\-package\fR \fI\,PATTERN\/\fR`)
}

func TestPackageManpage(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and runs a generated test")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}
	var buf bytes.Buffer
	args := []string{"--package", "./testdata/app", "--function", "newRootCmd", "--date", "2024-01-02"}
	if err := run(args, &buf, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, ".SH NAME\napp \\- Serve and inspect sample data")
	assertContains(t, out, `\fBapp\fR \fI\,serve\/\fR`)
	assertContains(t, out, `\fB\-l\fR \fI\,ADDR\/\fR, \fB\-\-listen\fR \fI\,ADDR\/\fR`)
}

func copyFile(t *testing.T, from, to string) {
	t.Helper()
	data, err := os.ReadFile(from)
	if err != nil {
		t.Fatalf("read %s: %v", from, err)
	}
	if err := os.WriteFile(to, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", to, err)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\n%s", needle, haystack)
	}
}
