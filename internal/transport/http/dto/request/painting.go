package request

import (
	"dcolors/internal/domain/models"
	"dcolors/internal/services/catalog"
)

// PaintingRequest тело формы создания и редактирования работы.
// Обязательность полей проверяет catalog.Validate.
type PaintingRequest struct {
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Author    string   `json:"author"`
	Sizes     []string `json:"sizes"`
	Reference string   `json:"reference"`
	Images    []string `json:"images"`
}

func (r PaintingRequest) ToDraft() catalog.Draft {
	d := catalog.NewDraft().
		WithTitle(r.Title).
		WithCategory(r.Category).
		WithAuthor(r.Author).
		WithReference(r.Reference).
		WithImages(r.Images)

	for _, s := range r.Sizes {
		d = d.AddSize(s)
	}

	return d
}

type PaintingsQuery struct {
	Category string `query:"category"`
	Author   string `query:"author"`
	Size     string `query:"size"`
	Sort     string `query:"sort" validate:"omitempty,oneof=newest oldest titleAsc titleDesc authorAsc authorDesc"`
	Search   string `query:"q" validate:"max=200"`
}

func (q PaintingsQuery) ToFilter() models.FilterSpec {
	return models.FilterSpec{
		Category: q.Category,
		Author:   q.Author,
		Size:     q.Size,
		Sort:     models.SortOrder(q.Sort),
		Search:   q.Search,
	}
}

type VocabularyRequest struct {
	Category string `json:"category" validate:"max=100"`
	Author   string `json:"author" validate:"max=100"`
}
