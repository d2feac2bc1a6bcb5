package categories

import (
	"errors"
	"fmt"
	"strings"
)

// Other is the reserved bucket for unmatched and ambiguous transactions.
const Other = "other"

var (
	ErrEmptyName     = errors.New("category name is empty")
	ErrDuplicateName = errors.New("duplicate category name")
	ErrReservedName  = errors.New("category name is reserved")
)

// Category is a named bucket with the keywords that select it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Table is an ordered, read-only set of categories. Order is both display
// order and match priority. The zero Table is empty and valid.
type Table struct {
	entries []Category
}

// New builds a Table from entries, copying them.
func New(entries ...Category) (Table, error) {
	seen := make(map[string]bool, len(entries))
	copied := make([]Category, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return Table{}, fmt.Errorf("entry %d: %w", i+1, ErrEmptyName)
		}
		key := strings.ToLower(name)
		if key == Other {
			return Table{}, fmt.Errorf("entry %d %q: %w", i+1, name, ErrReservedName)
		}
		if seen[key] {
			return Table{}, fmt.Errorf("entry %d %q: %w", i+1, name, ErrDuplicateName)
		}
		seen[key] = true

		copied = append(copied, Category{
			Name:     name,
			Keywords: append([]string(nil), e.Keywords...),
		})
	}
	return Table{entries: copied}, nil
}

// MustNew is New for tables known at compile time. Panics on error.
func MustNew(entries ...Category) Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of categories, excluding Other.
func (t Table) Len() int { return len(t.entries) }

// At returns the i'th category. The keyword slice is shared; do not modify it.
func (t Table) At(i int) Category { return t.entries[i] }

// Names returns category names in table order, without Other.
func (t Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Categories returns a deep copy of the entries.
func (t Table) Categories() []Category {
	out := make([]Category, len(t.entries))
	for i, e := range t.entries {
		out[i] = Category{Name: e.Name, Keywords: append([]string(nil), e.Keywords...)}
	}
	return out
}
