package catalog

import (
	"slices"
	"strings"

	"dcolors/internal/domain/models"

	"github.com/google/uuid"
)

// Draft состояние формы новой или редактируемой работы.
// Все методы возвращают новый Draft, исходное значение не меняется.
type Draft struct {
	title     string
	author    string
	category  string
	reference string
	sizes     []string
	images    []string
}

func NewDraft() Draft {
	return Draft{}
}

// DraftFrom prefills a draft for editing an existing painting.
func DraftFrom(p models.Painting) Draft {
	return Draft{
		title:     p.Title,
		author:    p.Author,
		category:  p.Category,
		reference: p.Reference,
		sizes:     slices.Clone(p.Sizes),
		images:    slices.Clone(p.Images),
	}
}

func (d Draft) Title() string     { return d.title }
func (d Draft) Author() string    { return d.author }
func (d Draft) Category() string  { return d.category }
func (d Draft) Reference() string { return d.reference }
func (d Draft) Sizes() []string   { return slices.Clone(d.sizes) }
func (d Draft) Images() []string  { return slices.Clone(d.images) }

func (d Draft) WithTitle(title string) Draft {
	d.title = title
	return d
}

func (d Draft) WithAuthor(author string) Draft {
	d.author = author
	return d
}

func (d Draft) WithCategory(category string) Draft {
	d.category = category
	return d
}

func (d Draft) WithReference(reference string) Draft {
	d.reference = reference
	return d
}

// WithImages replaces the image list.
func (d Draft) WithImages(images []string) Draft {
	d.images = slices.Clone(images)
	return d
}

// AddImages appends images after the existing ones.
func (d Draft) AddImages(images ...string) Draft {
	d.images = append(slices.Clip(d.images), images...)
	return d
}

// RemoveImage drops the image at index i; out of range is a no-op.
func (d Draft) RemoveImage(i int) Draft {
	if i < 0 || i >= len(d.images) {
		return d
	}
	d.images = slices.Delete(slices.Clone(d.images), i, i+1)
	return d
}

// AddSize adds a predefined or free-text size label. Blank labels and
// duplicates are ignored.
func (d Draft) AddSize(size string) Draft {
	size = strings.TrimSpace(size)
	if size == "" || slices.Contains(d.sizes, size) {
		return d
	}
	d.sizes = append(slices.Clip(d.sizes), size)
	return d
}

func (d Draft) RemoveSize(size string) Draft {
	size = strings.TrimSpace(size)
	if !slices.Contains(d.sizes, size) {
		return d
	}
	d.sizes = slices.DeleteFunc(slices.Clone(d.sizes), func(s string) bool { return s == size })
	return d
}

// ToggleSize adds size if absent and removes it otherwise.
func (d Draft) ToggleSize(size string) Draft {
	if slices.Contains(d.sizes, strings.TrimSpace(size)) {
		return d.RemoveSize(size)
	}
	return d.AddSize(size)
}

// ToRecord builds the persistable painting. existingID is uuid.Nil for a new
// record; otherwise the result fully replaces that record. The timestamp is
// left zero and assigned by the store on write.
func ToRecord(d Draft, existingID uuid.UUID) models.Painting {
	sizes := make([]string, 0, len(d.sizes))
	for _, s := range d.sizes {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(sizes, s) {
			sizes = append(sizes, s)
		}
	}

	images := make([]string, 0, len(d.images))
	for _, img := range d.images {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}

	return models.Painting{
		ID:        existingID,
		Title:     strings.TrimSpace(d.title),
		Category:  strings.TrimSpace(d.category),
		Author:    strings.TrimSpace(d.author),
		Sizes:     sizes,
		Reference: strings.TrimSpace(d.reference),
		Images:    images,
	}
}
