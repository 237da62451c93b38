package catalog

import (
	"sort"
	"strings"
)

// Metadata summarizes the full snapshot for rendering filter controls:
// availability counts, the price ceiling, and the distinct value set
// of each facet.
type Metadata struct {
	InStock      int      `json:"in_stock"`
	OutOfStock   int      `json:"out_of_stock"`
	PriceCeiling int64    `json:"price_ceiling"`
	Categories   []string `json:"categories"`
	Colors       []string `json:"colors"`
	Sizes        []string `json:"sizes"`
	Materials    []string `json:"materials"`
}

// Summarize derives filter metadata from the full product snapshot.
// Facet values are deduplicated case-insensitively (first spelling
// wins) and sorted.
func Summarize(all []Product) Metadata {
	m := Metadata{}
	categories := newValueSet()
	colors := newValueSet()
	sizes := newValueSet()
	materials := newValueSet()

	for _, p := range all {
		if p.InStock {
			m.InStock++
		} else {
			m.OutOfStock++
		}
		if p.Price > m.PriceCeiling {
			m.PriceCeiling = p.Price
		}
		categories.add(p.Category)
		colors.addAll(p.Colors)
		sizes.addAll(p.Sizes)
		materials.addAll(p.Materials)
	}

	m.Categories = categories.sorted()
	m.Colors = colors.sorted()
	m.Sizes = sizes.sorted()
	m.Materials = materials.sorted()
	return m
}

type valueSet struct {
	seen   map[string]struct{}
	values []string
}

func newValueSet() *valueSet {
	return &valueSet{seen: make(map[string]struct{})}
}

func (s *valueSet) add(v string) {
	if v == "" {
		return
	}
	key := strings.ToLower(v)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.values = append(s.values, v)
}

func (s *valueSet) addAll(vs []string) {
	for _, v := range vs {
		s.add(v)
	}
}

func (s *valueSet) sorted() []string {
	sort.Strings(s.values)
	return s.values
}
