package item

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Unknown replaces missing or blank property values.
const Unknown = "(Unknown)"

var (
	// ErrPropertyNotFound is returned when an accessor does not know a
	// property name.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrWrongItemType is returned by typed extractors handed an item of
	// another concrete type.
	ErrWrongItemType = errors.New("wrong item type")
)

// Accessor resolves a named property of an item to zero or more values.
type Accessor interface {
	Resolve(it Item, property string) ([]string, error)
}

// Extractor reads one property from an item.
type Extractor func(it Item) ([]string, error)

// Table is an Accessor backed by a fixed set of named extractors.
type Table struct {
	extractors map[string]Extractor
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{extractors: make(map[string]Extractor)}
}

// Register adds or replaces the extractor for name and returns t.
func (t *Table) Register(name string, fn Extractor) *Table {
	t.extractors[name] = fn
	return t
}

// Resolve implements Accessor.
func (t *Table) Resolve(it Item, property string) ([]string, error) {
	fn, ok := t.extractors[property]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPropertyNotFound, property)
	}
	return fn(it)
}

// Has reports whether property is registered.
func (t *Table) Has(property string) bool {
	_, ok := t.extractors[property]
	return ok
}

// Properties returns the registered property names in sorted order.
func (t *Table) Properties() []string {
	names := make([]string, 0, len(t.extractors))
	for name := range t.extractors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String adapts a single-valued getter on concrete type T.
func String[T Item](get func(T) string) Extractor {
	return func(it Item) ([]string, error) {
		v, ok := it.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrWrongItemType, it)
		}
		return []string{get(v)}, nil
	}
}

// Strings adapts a multi-valued getter on concrete type T.
func Strings[T Item](get func(T) []string) Extractor {
	return func(it Item) ([]string, error) {
		v, ok := it.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrWrongItemType, it)
		}
		return get(v), nil
	}
}

// Func adapts a getter on concrete type T that can fail.
func Func[T Item](get func(T) (string, error)) Extractor {
	return func(it Item) ([]string, error) {
		v, ok := it.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrWrongItemType, it)
		}
		s, err := get(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

// Resolve reads property from it through acc and substitutes Unknown for
// missing values. A resolution error is logged and treated as no value.
// The result always has at least one element.
func Resolve(acc Accessor, it Item, property string, logger *slog.Logger) []string {
	values, err := acc.Resolve(it, property)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("property resolution failed",
			"property", property,
			"item", it.Title(),
			"error", err,
		)
		return []string{Unknown}
	}
	if len(values) == 0 {
		return []string{Unknown}
	}
	out := make([]string, len(values))
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			v = Unknown
		}
		out[i] = v
	}
	return out
}
