package catalog

import (
	"slices"
	"strings"

	"dcolors/internal/domain/models"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer compares two strings for ordering.
type Comparer interface {
	CompareString(a, b string) int
}

type byteComparer struct{}

func (byteComparer) CompareString(a, b string) int { return strings.Compare(a, b) }

// Query применяет фильтры галереи с учётом локали.
type Query struct {
	tag language.Tag
}

// NewQuery parses locale as a BCP 47 tag; unknown tags fall back to Spanish.
func NewQuery(locale string) Query {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return Query{tag: tag}
}

// Apply filters and sorts records. A collator is built per call since
// collate.Collator is not safe for concurrent use.
func (q Query) Apply(records []models.Painting, spec models.FilterSpec) []models.Painting {
	return Apply(records, spec, collate.New(q.tag))
}

// Apply returns the records matching spec in the requested order.
// records is never modified. A nil cmp compares bytewise.
func Apply(records []models.Painting, spec models.FilterSpec, cmp Comparer) []models.Painting {
	if cmp == nil {
		cmp = byteComparer{}
	}

	term := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]models.Painting, 0, len(records))
	for _, p := range records {
		if !unset(spec.Category) && p.Category != spec.Category {
			continue
		}
		if !unset(spec.Author) && p.Author != spec.Author {
			continue
		}
		if !unset(spec.Size) && !p.HasSize(spec.Size) {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, less(spec.Sort, cmp))

	return out
}

// unset reports whether a selector is unset.
func unset(v string) bool {
	return v == "" || v == models.All
}

func matches(p models.Painting, term string) bool {
	for _, field := range []string{p.Title, p.Reference, p.Author, p.Category} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func less(order models.SortOrder, cmp Comparer) func(a, b models.Painting) int {
	switch order {
	case models.SortOldest:
		return func(a, b models.Painting) int { return a.Timestamp.Compare(b.Timestamp) }
	case models.SortTitleAsc:
		return func(a, b models.Painting) int { return cmp.CompareString(a.Title, b.Title) }
	case models.SortTitleDesc:
		return func(a, b models.Painting) int { return cmp.CompareString(b.Title, a.Title) }
	case models.SortAuthorAsc:
		return func(a, b models.Painting) int { return cmp.CompareString(a.Author, b.Author) }
	case models.SortAuthorDesc:
		return func(a, b models.Painting) int { return cmp.CompareString(b.Author, a.Author) }
	default:
		// zero timestamp is the earliest time.Time
		return func(a, b models.Painting) int { return b.Timestamp.Compare(a.Timestamp) }
	}
}

// Latest returns up to n newest paintings.
func Latest(records []models.Painting, n int) []models.Painting {
	out := Apply(records, models.FilterSpec{Sort: models.SortNewest}, nil)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CategoryPreviews returns one entry per category in first-seen order, with
// the cover of the first painting in that category that has an image.
func CategoryPreviews(records []models.Painting) []models.CategoryPreview {
	index := make(map[string]int)
	out := []models.CategoryPreview{}

	for _, p := range records {
		if p.Category == "" {
			continue
		}
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, models.CategoryPreview{Name: p.Category})
		}
		out[i].Count++
		if out[i].Image == "" {
			out[i].Image = p.Cover()
		}
	}

	return out
}

// RelatedBySize returns the other paintings sharing at least one size with
// the painting identified by id, in input order.
func RelatedBySize(records []models.Painting, id uuid.UUID) []models.Painting {
	var target *models.Painting
	for i := range records {
		if records[i].ID == id {
			target = &records[i]
			break
		}
	}

	out := []models.Painting{}
	if target == nil {
		return out
	}

	for _, p := range records {
		if p.ID == id {
			continue
		}
		if slices.ContainsFunc(p.Sizes, target.HasSize) {
			out = append(out, p)
		}
	}

	return out
}
