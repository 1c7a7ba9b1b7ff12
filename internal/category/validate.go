package category

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidCategoryConfig is the sentinel wrapped by every configuration
// error. Use errors.Is to detect it.
var ErrInvalidCategoryConfig = errors.New("invalid category config")

// Validation error codes (E200-E299)
const (
	ErrCodeBucketWithoutProperty = "E201" // bucket_size > 0 with no property
	ErrCodeUngroupedChild        = "E202" // non-root node neither heading nor grouped
	ErrCodeTemplateLabel         = "E203" // template carries an instance label
	ErrCodeUnknownProperty       = "E204" // property not known to the accessor
	ErrCodeSharedNode            = "E205" // node reachable twice (graph, not tree)
)

// ConfigError describes one structural problem in a category tree.
type ConfigError struct {
	Path    string `json:"path"`
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s: %s: %s", e.Code, e.Path, e.Field, e.Message)
}

// Unwrap returns ErrInvalidCategoryConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidCategoryConfig
}

// ValidateOption configures Validate.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	known []string
}

// WithKnownProperties restricts node properties to names. Without it any
// property name is accepted.
func WithKnownProperties(names ...string) ValidateOption {
	return func(c *validateConfig) {
		c.known = append(c.known, names...)
	}
}

// Validate checks the whole tree rooted at root and returns every problem
// found (it does not stop at the first).
func Validate(root *Node, opts ...ValidateOption) []*ConfigError {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var errs []*ConfigError
	seen := make(map[*Node]bool)
	var visit func(n *Node, path string, isRoot bool)
	visit = func(n *Node, path string, isRoot bool) {
		if seen[n] {
			errs = append(errs, &ConfigError{
				Path:    path,
				Field:   "children",
				Code:    ErrCodeSharedNode,
				Message: "node appears more than once in the tree",
			})
			return
		}
		seen[n] = true

		errs = append(errs, checkNode(n, path, isRoot, cfg)...)
		for i, c := range n.children {
			visit(c, fmt.Sprintf("%s.children[%d]", path, i), false)
		}
	}
	visit(root, "root", true)
	return errs
}

// Check is Validate reduced to a single error. It returns nil for a valid
// tree; otherwise the joined ConfigErrors, which match
// ErrInvalidCategoryConfig under errors.Is.
func Check(root *Node, opts ...ValidateOption) error {
	errs := Validate(root, opts...)
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

// CheckLevel validates n and its immediate children without descending
// further. n itself may be an instance of any template, so only the rules
// that hold for every node apply to it.
func CheckLevel(n *Node) error {
	if err := firstError(checkShape(n, "node", true)); err != nil {
		return err
	}
	for i, c := range n.children {
		if err := firstError(checkShape(c, fmt.Sprintf("node.children[%d]", i), false)); err != nil {
			return err
		}
	}
	return nil
}

func checkNode(n *Node, path string, isRoot bool, cfg *validateConfig) []*ConfigError {
	errs := checkShape(n, path, isRoot)
	if n.label != "" {
		errs = append(errs, &ConfigError{
			Path:    path,
			Field:   "label",
			Code:    ErrCodeTemplateLabel,
			Message: fmt.Sprintf("template carries instance label %q", n.label),
		})
	}
	return append(errs, checkProperty(n, path, cfg)...)
}

// checkShape holds the rules that apply to templates and instances alike.
func checkShape(n *Node, path string, isRoot bool) []*ConfigError {
	var errs []*ConfigError
	if n.bucketSize > 0 && n.property == "" {
		errs = append(errs, &ConfigError{
			Path:    path,
			Field:   "bucket_size",
			Code:    ErrCodeBucketWithoutProperty,
			Message: fmt.Sprintf("bucket_size %d requires a property", n.bucketSize),
		})
	}
	if !isRoot && n.label == "" && n.property == "" && !n.useHeading {
		errs = append(errs, &ConfigError{
			Path:    path,
			Field:   "property",
			Code:    ErrCodeUngroupedChild,
			Message: "child node must set a property or use_heading",
		})
	}
	return errs
}

func checkProperty(n *Node, path string, cfg *validateConfig) []*ConfigError {
	if n.property == "" || len(cfg.known) == 0 || slices.Contains(cfg.known, n.property) {
		return nil
	}
	return []*ConfigError{{
		Path:    path,
		Field:   "property",
		Code:    ErrCodeUnknownProperty,
		Message: fmt.Sprintf("unknown property %q", n.property),
	}}
}

func firstError(errs []*ConfigError) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
