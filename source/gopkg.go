package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go/types"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/go-manpage/manpage"
)

const (
	driverEnv  = "GO_MANPAGE_DESCRIPTION"
	driverFile = "zz_gomanpage_describe_test.go"
	driverTest = "TestGoManpageDescribe"
)

// PackageTarget names a command or flag set inside a Go package. Exactly
// one of Function and Object must be set.
type PackageTarget struct {
	// Pattern is a package pattern as accepted by go list, such as
	// "./cmd/tool".
	Pattern string
	// Function names a function taking no arguments that returns a
	// *cobra.Command or *pflag.FlagSet, optionally followed by an error.
	Function string
	// Object names a package-level variable of one of those types.
	Object string
	// Prog overrides the program name.
	Prog string
	// Dir is the directory the pattern is resolved from.
	Dir string
}

func (t PackageTarget) validate() error {
	switch {
	case t.Pattern == "":
		return errors.New("missing package")
	case t.Function == "" && t.Object == "":
		return errors.New("one of function or object is required")
	case t.Function != "" && t.Object != "":
		return errors.New("function and object are mutually exclusive")
	}
	return nil
}

// LoadPackage type-checks the target package, then builds and runs a
// generated test in it that serializes the target with FromCobra or
// FromFlagSet. The generated file is supplied through a build overlay and
// never written into the package directory. The target's module must
// require github.com/agentflare-ai/go-manpage.
func LoadPackage(ctx context.Context, t PackageTarget) (*manpage.Parser, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	pkg, err := loadPackage(ctx, t.Dir, t.Pattern)
	if err != nil {
		return nil, err
	}
	data, err := resolveTarget(pkg, t)
	if err != nil {
		return nil, err
	}
	var src bytes.Buffer
	if err := driverTemplate.Execute(&src, data); err != nil {
		return nil, err
	}
	dir := packageDir(pkg)
	if dir == "" {
		return nil, fmt.Errorf("cannot determine directory of %s", pkg.PkgPath)
	}
	d, err := runDriver(ctx, dir, src.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pkg.PkgPath, err)
	}
	return d.Parser(), nil
}

func loadPackage(ctx context.Context, dir, pattern string) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedTypes | packages.NeedModule,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages matched %q", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want one", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("%s", pkg.Errors[0])
	}
	return pkg, nil
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}
	return ""
}

type driverData struct {
	Package      string
	Test         string
	Env          string
	Expr         string
	ReturnsError bool
	Flavor       string
	Prog         string
}

// resolveTarget checks the target's declaration and returns the values
// the driver template needs.
func resolveTarget(pkg *packages.Package, t PackageTarget) (driverData, error) {
	data := driverData{
		Package: pkg.Name,
		Test:    driverTest,
		Env:     driverEnv,
		Prog:    t.Prog,
	}
	name, kind := t.Function, "function"
	if name == "" {
		name, kind = t.Object, "object"
	}
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return data, fmt.Errorf("no %s %q in %s", kind, name, pkg.PkgPath)
	}

	var typ types.Type
	switch kind {
	case "function":
		fn, ok := obj.(*types.Func)
		if !ok {
			return data, fmt.Errorf("%s.%s is not a function", pkg.PkgPath, name)
		}
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() != 0 || sig.Variadic() {
			return data, fmt.Errorf("%s.%s must not take arguments", pkg.PkgPath, name)
		}
		res := sig.Results()
		switch {
		case res.Len() == 1:
		case res.Len() == 2 && isError(res.At(1).Type()):
			data.ReturnsError = true
		default:
			return data, fmt.Errorf("%s.%s must return a command or flag set and an optional error", pkg.PkgPath, name)
		}
		typ = res.At(0).Type()
		data.Expr = name + "()"
	default:
		v, ok := obj.(*types.Var)
		if !ok {
			return data, fmt.Errorf("%s.%s is not a variable", pkg.PkgPath, name)
		}
		typ = v.Type()
		data.Expr = name
	}

	flavor, pointer := flavorOf(typ)
	if flavor == "" {
		return data, fmt.Errorf("%s.%s has type %s, want *cobra.Command or *pflag.FlagSet",
			pkg.PkgPath, name, types.TypeString(typ, nil))
	}
	if !pointer {
		if kind == "function" {
			return data, fmt.Errorf("%s.%s returns %s by value, want a pointer",
				pkg.PkgPath, name, types.TypeString(typ, nil))
		}
		data.Expr = "&" + data.Expr
	}
	data.Flavor = flavor
	return data, nil
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// flavorOf reports which adapter handles t and whether t is a pointer.
func flavorOf(t types.Type) (flavor string, pointer bool) {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		t, pointer = ptr.Elem(), true
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return "", false
	}
	switch named.Obj().Pkg().Path() + "." + named.Obj().Name() {
	case "github.com/spf13/cobra.Command":
		return "Cobra", pointer
	case "github.com/spf13/pflag.FlagSet":
		return "FlagSet", pointer
	}
	return "", false
}

var driverTemplate = template.Must(template.New("driver").Parse(`// Code generated by go-manpage. DO NOT EDIT.

package {{.Package}}

import (
	"encoding/json"
	"os"
	"testing"

	gomanpagesource "github.com/agentflare-ai/go-manpage/source"
)

func {{.Test}}(t *testing.T) {
	descPath := os.Getenv("{{.Env}}")
	if descPath == "" {
		t.Skip("{{.Env}} is not set")
	}
{{- if .ReturnsError}}
	descTarget, err := {{.Expr}}
	if err != nil {
		t.Fatal(err)
	}
{{- else}}
	descTarget := {{.Expr}}
{{- end}}
	descParser := gomanpagesource.From{{.Flavor}}(descTarget, gomanpagesource.WithProg({{printf "%q" .Prog}}))
	descData, err := json.Marshal(gomanpagesource.Describe(descParser))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(descPath, descData, 0o644); err != nil {
		t.Fatal(err)
	}
}
`))

// runDriver runs the generated test in dir and decodes the description it
// writes.
func runDriver(ctx context.Context, dir string, src []byte) (Description, error) {
	tmp, err := os.MkdirTemp("", "go-manpage-")
	if err != nil {
		return Description{}, err
	}
	defer os.RemoveAll(tmp)

	driver := filepath.Join(tmp, driverFile)
	if err := os.WriteFile(driver, src, 0o644); err != nil {
		return Description{}, err
	}
	overlay, err := json.Marshal(struct{ Replace map[string]string }{
		Replace: map[string]string{filepath.Join(dir, driverFile): driver},
	})
	if err != nil {
		return Description{}, err
	}
	overlayPath := filepath.Join(tmp, "overlay.json")
	if err := os.WriteFile(overlayPath, overlay, 0o644); err != nil {
		return Description{}, err
	}

	out := filepath.Join(tmp, "description.json")
	cmd := exec.CommandContext(ctx, "go", "test", "-count=1", "-vet=off",
		"-overlay="+overlayPath, "-run=^"+driverTest+"$", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), driverEnv+"="+out)
	if output, err := cmd.CombinedOutput(); err != nil {
		return Description{}, fmt.Errorf("running description driver: %w\n%s", err, bytes.TrimSpace(output))
	}

	f, err := os.Open(out)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Description{}, errors.New("description driver wrote no output")
		}
		return Description{}, err
	}
	defer f.Close()
	return Decode(f, "json")
}
