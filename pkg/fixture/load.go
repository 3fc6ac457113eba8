package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/patchwork/pkg/dom"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

// Format identifies a fixture encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// ErrUnsupportedFormat is returned for file extensions with no known format.
var ErrUnsupportedFormat = errors.New("fixture: unsupported format")

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ParseError reports a fixture that could not be decoded.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s fixture %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads a tree from path. The format follows the file extension.
// A missing file yields an error matching os.ErrNotExist.
func Load(path string, listen Listener) (vdom.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Parse(bytes.NewReader(data), format, listen)
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}
	return n, nil
}

// Parse reads a tree in the given format.
func Parse(r io.Reader, format Format, listen Listener) (vdom.Node, error) {
	var tree Tree
	switch format {
	case FormatHTML:
		return dom.ParseHTML(r, dom.ParseOptions{})
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&tree); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return tree.Node(listen)
}

// Write encodes n in the given format.
func Write(w io.Writer, n vdom.Node, format Format) error {
	switch format {
	case FormatHTML:
		return dom.New(n).Render(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(FromNode(n))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(FromNode(n)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
