package category

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownCategory is returned when a name or slug is not part of the registry.
var ErrUnknownCategory = errors.New("unknown category")

// Category is a selectable group of points of interest.
type Category struct {
	Name string `json:"name"` // Name is the human-readable label shown in the sidebar.
	Icon string `json:"icon"` // Icon is the Font Awesome class used for markers and the sidebar.
	Tag  string `json:"tag"`  // Tag is the filter term sent to the POI source.
}

// Slug returns a URL-safe form of the category name: diacritics stripped, lower case,
// spaces replaced by dashes.
func (c Category) Slug() string {
	return slugify(c.Name)
}

// Registry is an immutable, ordered set of categories.
type Registry struct {
	ordered []Category
	byName  map[string]Category
	bySlug  map[string]Category
}

// NewRegistry builds a registry from the given categories. Later duplicates by name are ignored.
func NewRegistry(categories ...Category) *Registry {
	unique := lo.UniqBy(categories, func(c Category) string { return c.Name })

	return &Registry{
		ordered: unique,
		byName:  lo.KeyBy(unique, func(c Category) string { return c.Name }),
		bySlug:  lo.KeyBy(unique, func(c Category) string { return c.Slug() }),
	}
}

// Default returns the registry of categories available on the map.
func Default() *Registry {
	return NewRegistry(
		Category{Name: "Ensino", Icon: "fa-school", Tag: "school"},
		Category{Name: "Saúde", Icon: "fa-hospital", Tag: "hospital"},
		Category{Name: "Ambiental", Icon: "fa-leaf", Tag: "natural"},
		Category{Name: "Correios", Icon: "fa-signs-post", Tag: "office"},
		Category{Name: "Esportes", Icon: "fa-futbol", Tag: "sports_centre"},
		Category{Name: "Cultura", Icon: "fa-masks-theater", Tag: "theatre"},
		Category{Name: "Segurança", Icon: "fa-shield-halved", Tag: "police"},
		Category{Name: "Infraestrutura", Icon: "fa-bolt", Tag: "power"},
		Category{Name: "Transporte", Icon: "fa-bus", Tag: "bus_station"},
		Category{Name: "Comunidade", Icon: "fa-users", Tag: "community_centre"},
		Category{Name: "Eventos", Icon: "fa-calendar-days", Tag: "festival"},
	)
}

// Lookup returns the category with the given name.
func (r *Registry) Lookup(name string) (Category, error) {
	cat, ok := r.byName[name]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}

	return cat, nil
}

// LookupSlug returns the category whose slug matches.
func (r *Registry) LookupSlug(slug string) (Category, error) {
	cat, ok := r.bySlug[slugify(slug)]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, slug)
	}

	return cat, nil
}

// All returns every category in display order.
func (r *Registry) All() []Category {
	return append([]Category(nil), r.ordered...)
}

// Names returns every category name in display order.
func (r *Registry) Names() []string {
	return lo.Map(r.ordered, func(c Category, _ int) string { return c.Name })
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.ordered)
}

func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(plain)), " ", "-")
}
