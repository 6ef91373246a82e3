package catalog

import (
	"strings"

	"dcolors/internal/domain/models"
)

// orderedSet хранит уникальные значения в порядке появления
type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), values: []string{models.All}}
}

func (s *orderedSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" || v == models.All {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

// DeriveVocabulary collects the distinct non-empty categories, authors and
// sizes of records in first-seen order. Every list starts with models.All.
func DeriveVocabulary(records []models.Painting) models.Vocabulary {
	return ExtendVocabulary(records, nil, nil)
}

// ExtendVocabulary is DeriveVocabulary with extra categories and authors
// appended after the observed ones.
func ExtendVocabulary(records []models.Painting, categories, authors []string) models.Vocabulary {
	cats, auths, sizes := newOrderedSet(), newOrderedSet(), newOrderedSet()

	for _, p := range records {
		cats.add(p.Category)
		auths.add(p.Author)
		for _, s := range p.Sizes {
			sizes.add(s)
		}
	}
	for _, c := range categories {
		cats.add(c)
	}
	for _, a := range authors {
		auths.add(a)
	}

	return models.Vocabulary{
		Categories:      cats.values,
		Authors:         auths.values,
		Sizes:           sizes.values,
		PredefinedSizes: append([]string(nil), models.PredefinedSizes...),
	}
}
