package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestPaintingDocument_Normalize(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		doc    PaintingDocument
		legacy bool
		want   Painting
	}{
		{
			name: "current schema",
			doc: PaintingDocument{
				ID: id, Title: "Marina", Sizes: []string{"60 x 60 cm"},
				Images: []string{"img1", "img2"}, Timestamp: &ts,
			},
			want: Painting{
				ID: id, Title: "Marina", Sizes: []string{"60 x 60 cm"},
				Images: []string{"img1", "img2"}, Timestamp: ts,
			},
		},
		{
			name: "legacy single size and image",
			doc: PaintingDocument{
				ID: id, Title: "Vieja",
				Size: ptr("100 x 80 cm"), ImageBase64: ptr("data:image/jpeg;base64,AA"),
			},
			legacy: true,
			want: Painting{
				ID: id, Title: "Vieja", Sizes: []string{"100 x 80 cm"},
				Images: []string{"data:image/jpeg;base64,AA"},
			},
		},
		{
			name: "current lists win over legacy columns",
			doc: PaintingDocument{
				ID: id, Sizes: []string{"60 x 60 cm"}, Images: []string{"img1"},
				Size: ptr("old"), ImageBase64: ptr("old"),
			},
			want: Painting{ID: id, Sizes: []string{"60 x 60 cm"}, Images: []string{"img1"}},
		},
		{
			name: "blank entries dropped, empty lists not nil",
			doc:  PaintingDocument{ID: id, Sizes: []string{""}, Images: []string{""}, Size: ptr("")},
			want: Painting{ID: id, Sizes: []string{}, Images: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.legacy, tt.doc.IsLegacy())
			assert.Equal(t, tt.want, tt.doc.Normalize())
		})
	}
}

func TestPainting_CoverAndHasSize(t *testing.T) {
	p := Painting{Sizes: []string{"60 x 60 cm"}, Images: []string{"a", "b"}}

	assert.Equal(t, "a", p.Cover())
	assert.Equal(t, "", Painting{}.Cover())
	assert.True(t, p.HasSize("60 x 60 cm"))
	assert.False(t, p.HasSize("60x60"))
}
