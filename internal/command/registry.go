package command

import (
	"fmt"
	"sort"
)

type Category string

const (
	CategoryShopping      Category = "shopping"
	CategoryCart          Category = "cart"
	CategoryOrders        Category = "orders"
	CategoryAccount       Category = "account"
	CategoryDeals         Category = "deals"
	CategoryMerchant      Category = "merchant"
	CategoryGroup         Category = "group"
	CategoryAdmin         Category = "admin"
	CategoryEntertainment Category = "entertainment"
	CategoryTools         Category = "tools"
	CategoryInfo          Category = "info"
	CategoryOwner         Category = "owner"
)

// Descriptor is the static metadata for one command. The catalog is
// loaded once at init and read-only afterwards.
type Descriptor struct {
	Canonical    string
	Aliases      []string
	Name         string
	Description  string
	Usage        string
	RequiresArgs bool
	Category     Category
}

type categoryMeta struct {
	Key   Category
	Title string
	Emoji string
}

// Registry resolves tokens (canonical names or aliases) to their
// descriptors and serves category listings for menu building.
type Registry struct {
	byToken    map[string]*Descriptor
	byCategory map[Category][]*Descriptor
	categories []categoryMeta
}

// NewRegistry builds the registry from the catalog. Two commands may
// never share a token, canonical or alias; a collision is a programming
// error and fails loading outright.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		byToken:    make(map[string]*Descriptor),
		byCategory: make(map[Category][]*Descriptor),
		categories: categoryOrder,
	}
	for i := range catalog {
		d := &catalog[i]
		if err := r.register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for process init paths where a broken
// catalog should stop the process.
func MustRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) register(d *Descriptor) error {
	if prev, ok := r.byToken[d.Canonical]; ok {
		return fmt.Errorf("command registry: %q already taken by %q", d.Canonical, prev.Canonical)
	}
	r.byToken[d.Canonical] = d
	for _, alias := range d.Aliases {
		if prev, ok := r.byToken[alias]; ok {
			return fmt.Errorf("command registry: alias %q of %q already taken by %q", alias, d.Canonical, prev.Canonical)
		}
		r.byToken[alias] = d
	}
	r.byCategory[d.Category] = append(r.byCategory[d.Category], d)
	return nil
}

// Resolve looks a token up by canonical name or alias.
func (r *Registry) Resolve(token string) (*Descriptor, bool) {
	d, ok := r.byToken[token]
	return d, ok
}

func (r *Registry) ListByCategory(cat Category) []*Descriptor {
	return r.byCategory[cat]
}

// All returns every descriptor exactly once, ordered by canonical name.
func (r *Registry) All() []*Descriptor {
	seen := make(map[string]bool, len(r.byToken))
	var out []*Descriptor
	for _, d := range r.byToken {
		if !seen[d.Canonical] {
			seen[d.Canonical] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}

func (r *Registry) Categories() []Category {
	out := make([]Category, 0, len(r.categories))
	for _, meta := range r.categories {
		out = append(out, meta.Key)
	}
	return out
}

func (r *Registry) categoryTitle(cat Category) (categoryMeta, bool) {
	for _, meta := range r.categories {
		if meta.Key == cat {
			return meta, true
		}
	}
	return categoryMeta{}, false
}
