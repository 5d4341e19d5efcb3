package presenter

import (
	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/samber/lo"
)

// Selection is the set of active category names. The zero value is an empty selection.
type Selection struct {
	names map[string]struct{}
}

// Has reports whether the category is selected.
func (s *Selection) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Toggle adds the category when absent and removes it otherwise.
func (s *Selection) Toggle(name string) {
	if s.names == nil {
		s.names = map[string]struct{}{}
	}

	if s.Has(name) {
		delete(s.names, name)
		return
	}
	s.names[name] = struct{}{}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.names = map[string]struct{}{}
}

// SelectAll selects every category of the registry.
func (s *Selection) SelectAll(reg *category.Registry) {
	s.names = lo.SliceToMap(reg.Names(), func(name string) (string, struct{}) { return name, struct{}{} })
}

// AllSelected reports whether every registry category is selected.
func (s *Selection) AllSelected(reg *category.Registry) bool {
	return reg.Len() > 0 && lo.EveryBy(reg.Names(), s.Has)
}

// Categories returns the selected categories in registry order.
func (s *Selection) Categories(reg *category.Registry) []category.Category {
	return lo.Filter(reg.All(), func(c category.Category, _ int) bool { return s.Has(c.Name) })
}
