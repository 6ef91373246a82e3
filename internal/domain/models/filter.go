package models

// All is the selector value that disables a filter.
const All = "all"

type SortOrder string

const (
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortTitleAsc   SortOrder = "titleAsc"
	SortTitleDesc  SortOrder = "titleDesc"
	SortAuthorAsc  SortOrder = "authorAsc"
	SortAuthorDesc SortOrder = "authorDesc"
)

// SortOrders lists every supported order.
var SortOrders = []SortOrder{
	SortNewest, SortOldest, SortTitleAsc, SortTitleDesc, SortAuthorAsc, SortAuthorDesc,
}

// Valid reports whether o is a known order. The empty order is valid and means newest.
func (o SortOrder) Valid() bool {
	if o == "" {
		return true
	}
	for _, known := range SortOrders {
		if o == known {
			return true
		}
	}
	return false
}

// FilterSpec параметры отбора и сортировки галереи
type FilterSpec struct {
	Category string    `query:"category" json:"category"`
	Author   string    `query:"author" json:"author"`
	Size     string    `query:"size" json:"size"`
	Sort     SortOrder `query:"sort" json:"sort"`
	Search   string    `query:"q" json:"q"`
}

// Vocabulary набор значений для фильтров, каждый список начинается с All
type Vocabulary struct {
	Categories      []string `json:"categories"`
	Authors         []string `json:"authors"`
	Sizes           []string `json:"sizes"`
	PredefinedSizes []string `json:"predefined_sizes,omitempty"`
}

// CategoryPreview обложка категории для главной страницы
type CategoryPreview struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Count int    `json:"count"`
}
