package config

import (
	"bytes"
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mediatree/internal/category"
)

// MarshalTree encodes the template tree rooted at root. The tree is
// validated first; an invalid tree is not written.
func MarshalTree(root *category.Node, f Format) ([]byte, error) {
	if err := category.Check(root); err != nil {
		return nil, err
	}
	fn := toFileNode(root)

	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fn); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatCUE:
		v := cuecontext.New().Encode(toMap(fn))
		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("encode cue: %w", err)
		}
		out, err := format.Node(v.Syntax())
		if err != nil {
			return nil, fmt.Errorf("format cue: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// SaveTree writes root to path in the format given by its extension.
func SaveTree(path string, root *category.Node) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := MarshalTree(root, f)
	if err != nil {
		return fmt.Errorf("save tree %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save tree %s: %w", path, err)
	}
	return nil
}
