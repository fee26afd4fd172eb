// Package language maps language names to judge language ids.
package language

import (
	"fmt"
	"sort"
	"strings"

	"gitlab.com/codejudge.net/internal/static/errs"
)

// Registry is an immutable name <-> id table. It is safe for concurrent use.
type Registry struct {
	idsByName map[string]int
	namesByID map[int]string
}

// NewRegistry copies table. Names are matched case-insensitively; when two
// names share an id, NameFor returns the lexically smallest.
func NewRegistry(table map[string]int) *Registry {
	r := &Registry{
		idsByName: make(map[string]int, len(table)),
		namesByID: make(map[int]string, len(table)),
	}
	for name, id := range table {
		r.idsByName[normalize(name)] = id
		if existing, ok := r.namesByID[id]; !ok || name < existing {
			r.namesByID[id] = name
		}
	}
	return r
}

// IDFor returns the judge id for a language name.
func (r *Registry) IDFor(name string) (int, error) {
	id, ok := r.idsByName[normalize(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.UnsupportedLanguage, name)
	}
	return id, nil
}

// NameFor returns the language name registered for a judge id.
func (r *Registry) NameFor(id int) (string, error) {
	name, ok := r.namesByID[id]
	if !ok {
		return "", fmt.Errorf("%w: language id %d", errs.UnsupportedLanguage, id)
	}
	return name, nil
}

// Names lists the supported language names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.namesByID))
	for _, name := range r.namesByID {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
