package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/go-manpage/manpage"
)

// ErrUnknownFormat is returned for description files whose extension is
// not one of .yaml, .yml, .toml or .json.
var ErrUnknownFormat = errors.New("unknown description format")

// LoadFile reads a description file and returns its parser tree. The
// encoding is chosen by extension. Unknown keys are rejected.
func LoadFile(path string) (*manpage.Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d.Parser(), nil
}

// Decode reads a description encoded as format, which is a file extension
// with or without the leading dot.
func Decode(r io.Reader, format string) (Description, error) {
	var d Description
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return d, err
		}
	case "toml":
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return d, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return d, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return d, err
		}
	default:
		return d, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if d.Prog == "" {
		return d, errors.New("description has no prog")
	}
	return d, nil
}

// Encode writes d as format.
func Encode(w io.Writer, d Description, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(d)
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
