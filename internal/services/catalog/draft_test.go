package catalog

import (
	"testing"

	"dcolors/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validDraft() Draft {
	return NewDraft().
		WithTitle("Marina").
		WithReference("DC-001").
		WithCategory("sea").
		WithAuthor("Ana").
		AddSize("60 x 60 cm").
		AddImages("data:image/jpeg;base64,AAAA")
}

func TestDraft_Immutable(t *testing.T) {
	base := NewDraft().AddSize("60 x 60 cm")

	next := base.AddSize("100 x 80 cm")
	removed := next.RemoveSize("60 x 60 cm")

	assert.Equal(t, []string{"60 x 60 cm"}, base.Sizes())
	assert.Equal(t, []string{"60 x 60 cm", "100 x 80 cm"}, next.Sizes())
	assert.Equal(t, []string{"100 x 80 cm"}, removed.Sizes())

	titled := base.WithTitle("x")
	assert.Empty(t, base.Title())
	assert.Equal(t, "x", titled.Title())
}

func TestDraft_AddSize(t *testing.T) {
	d := NewDraft().
		AddSize("60 x 60 cm").
		AddSize(" 60 x 60 cm ").
		AddSize("   ").
		AddSize("custom 1 x 1 m")

	assert.Equal(t, []string{"60 x 60 cm", "custom 1 x 1 m"}, d.Sizes())
	assert.Equal(t, []string{"custom 1 x 1 m"}, d.ToggleSize("60 x 60 cm").Sizes())
	assert.Equal(t, d.Sizes(), d.RemoveSize("missing").Sizes())
}

func TestDraft_Images(t *testing.T) {
	d := NewDraft().AddImages("a", "b", "c")

	assert.Equal(t, []string{"a", "c"}, d.RemoveImage(1).Images())
	assert.Equal(t, []string{"a", "b", "c"}, d.RemoveImage(7).Images())
	assert.Equal(t, []string{"z"}, d.WithImages([]string{"z"}).Images())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  FieldErrors
	}{
		{
			name:  "valid",
			draft: validDraft(),
			want: FieldErrors{
				FieldTitle: false, FieldReference: false, FieldCategory: false,
				FieldAuthor: false, FieldSizes: false, FieldImages: false,
			},
		},
		{
			name:  "empty title only",
			draft: validDraft().WithTitle("   "),
			want: FieldErrors{
				FieldTitle: true, FieldReference: false, FieldCategory: false,
				FieldAuthor: false, FieldSizes: false, FieldImages: false,
			},
		},
		{
			name:  "everything missing",
			draft: NewDraft(),
			want: FieldErrors{
				FieldTitle: true, FieldReference: true, FieldCategory: true,
				FieldAuthor: true, FieldSizes: true, FieldImages: true,
			},
		},
		{
			name:  "too many images",
			draft: validDraft().AddImages("b", "c", "d", "e"),
			want: FieldErrors{
				FieldTitle: false, FieldReference: false, FieldCategory: false,
				FieldAuthor: false, FieldSizes: false, FieldImages: true,
			},
		},
		{
			name:  "blank image",
			draft: validDraft().WithImages([]string{" "}),
			want: FieldErrors{
				FieldTitle: false, FieldReference: false, FieldCategory: false,
				FieldAuthor: false, FieldSizes: false, FieldImages: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.draft)

			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(Fields))
			assert.Equal(t, !tt.want.Valid(), len(got.Invalid()) > 0)
		})
	}
}

func TestToRecord(t *testing.T) {
	d := NewDraft().
		WithTitle("  Marina ").
		WithReference(" DC-001").
		WithCategory("sea ").
		WithAuthor(" Ana ").
		WithImages([]string{"img1", "", "img2"}).
		AddSize("60 x 60 cm").
		AddSize("100 x 80 cm")

	id := uuid.New()
	p := ToRecord(d, id)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "Marina", p.Title)
	assert.Equal(t, "DC-001", p.Reference)
	assert.Equal(t, "sea", p.Category)
	assert.Equal(t, "Ana", p.Author)
	assert.Equal(t, []string{"60 x 60 cm", "100 x 80 cm"}, p.Sizes)
	assert.Equal(t, []string{"img1", "img2"}, p.Images)
	assert.True(t, p.Timestamp.IsZero())

	assert.Equal(t, uuid.Nil, ToRecord(d, uuid.Nil).ID)
}

func TestDraftFrom_RoundTrip(t *testing.T) {
	p := models.Painting{
		ID:        uuid.New(),
		Title:     "Marina",
		Reference: "DC-001",
		Category:  "sea",
		Author:    "Ana",
		Sizes:     []string{"60 x 60 cm"},
		Images:    []string{"img1"},
	}

	d := DraftFrom(p)
	assert.True(t, Validate(d).Valid())

	// правки черновика не трогают исходную запись
	d = d.AddSize("100 x 80 cm").AddImages("img2")
	assert.Equal(t, []string{"60 x 60 cm"}, p.Sizes)
	assert.Equal(t, []string{"img1"}, p.Images)

	got := ToRecord(d, p.ID)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, []string{"60 x 60 cm", "100 x 80 cm"}, got.Sizes)
	assert.Equal(t, []string{"img1", "img2"}, got.Images)
}
