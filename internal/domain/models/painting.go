package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxImages ограничивает количество изображений в одной записи каталога
const MaxImages = 4

// PredefinedSizes предлагаемые размеры в форме администратора
var PredefinedSizes = []string{
	"150 x 50 cm", "100 x 80 cm", "70 x 140 cm",
	"100 x 130 cm", "100 x 150 cm", "100 x 200 cm",
	"120 x 120 cm", "120 x 150 cm", "60 x 60 cm",
}

// Painting представляет одну работу в каталоге
type Painting struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	Sizes     []string  `json:"sizes"`
	Reference string    `json:"reference"`
	Images    []string  `json:"images"`  // data URI, 1..MaxImages
	Timestamp time.Time `json:"timestamp"` // назначается хранилищем
}

// Cover возвращает первое изображение работы или пустую строку
func (p Painting) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasSize reports whether label is one of the painting sizes.
func (p Painting) HasSize(label string) bool {
	for _, s := range p.Sizes {
		if s == label {
			return true
		}
	}
	return false
}

// PaintingDocument is the stored shape as read back from the catalog store.
// Older records carry a single Size and ImageBase64 instead of Sizes and
// Images; both generations may live in the same collection.
type PaintingDocument struct {
	ID        uuid.UUID
	Title     string
	Category  string
	Author    string
	Sizes     []string
	Reference string
	Images    []string
	Timestamp *time.Time

	// legacy
	Size        *string
	ImageBase64 *string
}

// IsLegacy reports whether the document was written by the previous schema.
func (d PaintingDocument) IsLegacy() bool {
	return len(d.Sizes) == 0 && len(d.Images) == 0 && (d.Size != nil || d.ImageBase64 != nil)
}

// Normalize приводит обе версии документа к текущей модели
func (d PaintingDocument) Normalize() Painting {
	p := Painting{
		ID:        d.ID,
		Title:     d.Title,
		Category:  d.Category,
		Author:    d.Author,
		Reference: d.Reference,
		Sizes:     nonEmpty(d.Sizes),
		Images:    nonEmpty(d.Images),
	}

	if len(p.Sizes) == 0 && d.Size != nil && *d.Size != "" {
		p.Sizes = []string{*d.Size}
	}
	if len(p.Images) == 0 && d.ImageBase64 != nil && *d.ImageBase64 != "" {
		p.Images = []string{*d.ImageBase64}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if d.Timestamp != nil {
		p.Timestamp = *d.Timestamp
	}

	return p
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
