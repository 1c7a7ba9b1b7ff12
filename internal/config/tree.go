package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mediatree/internal/category"
)

//go:embed schema.cue
var schemaCUE string

// Tree file error codes, alongside the category E2xx codes.
const (
	ErrCodeParse  = "E210" // file is not valid YAML or CUE
	ErrCodeSchema = "E211" // file does not match #Node
)

// ErrUnsupportedFormat is returned for a tree file with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported tree file format")

// Format is a tree file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// fileNode is the on-disk shape of a category node.
type fileNode struct {
	Property   string     `yaml:"property,omitempty" json:"property,omitempty"`
	UseHeading bool       `yaml:"use_heading,omitempty" json:"use_heading,omitempty"`
	BucketSize int        `yaml:"bucket_size,omitempty" json:"bucket_size,omitempty"`
	Children   []fileNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// TreeOption configures LoadTree and ParseTree.
type TreeOption func(*treeOptions)

type treeOptions struct {
	validate []category.ValidateOption
}

// WithKnownProperties rejects nodes whose property is not in names.
func WithKnownProperties(names ...string) TreeOption {
	return func(o *treeOptions) {
		o.validate = append(o.validate, category.WithKnownProperties(names...))
	}
}

// LoadTree reads the tree file at path.
func LoadTree(path string, opts ...TreeOption) (*category.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	root, err := parseTree(data, format, path, opts...)
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", path, err)
	}
	return root, nil
}

// ParseTree decodes a tree from data in the given format.
func ParseTree(data []byte, format Format, opts ...TreeOption) (*category.Node, error) {
	return parseTree(data, format, "tree."+string(format), opts...)
}

func parseTree(data []byte, format Format, filename string, opts ...TreeOption) (*category.Node, error) {
	o := &treeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Node"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	var (
		fn  fileNode
		err error
	)
	switch format {
	case FormatYAML:
		fn, err = decodeYAML(ctx, schema, data)
	case FormatCUE:
		fn, err = decodeCUE(ctx, schema, data, filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	root := buildNode(fn)
	if err := category.Check(root, o.validate...); err != nil {
		return nil, err
	}
	return root, nil
}

func decodeYAML(ctx *cue.Context, schema cue.Value, data []byte) (fileNode, error) {
	var fn fileNode
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fn); err != nil {
			return fileNode{}, &category.ConfigError{
				Path:    "root",
				Code:    ErrCodeParse,
				Message: err.Error(),
			}
		}
	}
	if err := checkSchema(schema.Unify(ctx.Encode(toMap(fn)))); err != nil {
		return fileNode{}, err
	}
	return fn, nil
}

func decodeCUE(ctx *cue.Context, schema cue.Value, data []byte, filename string) (fileNode, error) {
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return fileNode{}, &category.ConfigError{
			Path:    "root",
			Code:    ErrCodeParse,
			Message: cueerrors.Details(err, nil),
		}
	}
	unified := schema.Unify(v)
	if err := checkSchema(unified); err != nil {
		return fileNode{}, err
	}
	var fn fileNode
	if err := unified.Decode(&fn); err != nil {
		return fileNode{}, &category.ConfigError{
			Path:    "root",
			Code:    ErrCodeSchema,
			Message: err.Error(),
		}
	}
	return fn, nil
}

// checkSchema validates v and reports every schema violation as a
// ConfigError.
func checkSchema(v cue.Value) error {
	err := v.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}
	var errs []error
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		errs = append(errs, &category.ConfigError{
			Path:    nodePath(e.Path()),
			Field:   fieldOf(e.Path()),
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(errs) == 0 {
		return &category.ConfigError{Path: "root", Code: ErrCodeSchema, Message: err.Error()}
	}
	return errors.Join(errs...)
}

// nodePath renders a CUE path such as [#Node children 0 bucket_size] as
// root.children[0], the node that holds the offending field. Definition
// selectors are dropped.
func nodePath(sel []string) string {
	sel = dropDefinitions(sel)
	var b strings.Builder
	b.WriteString("root")
	for i, s := range sel {
		if _, err := strconv.Atoi(s); err == nil {
			fmt.Fprintf(&b, "[%s]", s)
			continue
		}
		if i == len(sel)-1 {
			break
		}
		b.WriteString("." + s)
	}
	return b.String()
}

func fieldOf(sel []string) string {
	sel = dropDefinitions(sel)
	if len(sel) == 0 {
		return ""
	}
	last := sel[len(sel)-1]
	if _, err := strconv.Atoi(last); err == nil {
		return ""
	}
	return last
}

func dropDefinitions(sel []string) []string {
	out := make([]string, 0, len(sel))
	for _, s := range sel {
		if !strings.HasPrefix(s, "#") {
			out = append(out, s)
		}
	}
	return out
}

func buildNode(fn fileNode) *category.Node {
	n := category.NewRoot()
	n.SetProperty(fn.Property)
	n.SetUseHeading(fn.UseHeading)
	n.SetBucketSize(fn.BucketSize)
	for _, c := range fn.Children {
		n.AddChild(buildNode(c))
	}
	return n
}

func toFileNode(n *category.Node) fileNode {
	fn := fileNode{
		Property:   n.Property(),
		UseHeading: n.UseHeading(),
		BucketSize: n.BucketSize(),
	}
	for _, c := range n.Children() {
		fn.Children = append(fn.Children, toFileNode(c))
	}
	return fn
}

// toMap mirrors the omitempty rules of fileNode for CUE encoding.
func toMap(fn fileNode) map[string]any {
	m := map[string]any{}
	if fn.Property != "" {
		m["property"] = fn.Property
	}
	if fn.UseHeading {
		m["use_heading"] = true
	}
	if fn.BucketSize != 0 {
		m["bucket_size"] = fn.BucketSize
	}
	if len(fn.Children) > 0 {
		children := make([]any, len(fn.Children))
		for i, c := range fn.Children {
			children[i] = toMap(c)
		}
		m["children"] = children
	}
	return m
}
