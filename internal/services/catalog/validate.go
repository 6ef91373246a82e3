package catalog

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	FieldTitle     = "title"
	FieldReference = "reference"
	FieldCategory  = "category"
	FieldAuthor    = "author"
	FieldSizes     = "sizes"
	FieldImages    = "images"
)

// Fields lists every validated field in form order.
var Fields = []string{FieldTitle, FieldReference, FieldCategory, FieldAuthor, FieldSizes, FieldImages}

// FieldErrors maps every field in Fields to true when it is invalid.
type FieldErrors map[string]bool

func (fe FieldErrors) Valid() bool {
	for _, invalid := range fe {
		if invalid {
			return false
		}
	}
	return true
}

// Invalid returns the invalid fields in form order.
func (fe FieldErrors) Invalid() []string {
	var out []string
	for _, f := range Fields {
		if fe[f] {
			out = append(out, f)
		}
	}
	return out
}

// images max mirrors models.MaxImages
type draftFields struct {
	Title     string   `field:"title" validate:"required"`
	Reference string   `field:"reference" validate:"required"`
	Category  string   `field:"category" validate:"required"`
	Author    string   `field:"author" validate:"required"`
	Sizes     []string `field:"sizes" validate:"min=1,dive,required"`
	Images    []string `field:"images" validate:"min=1,max=4,dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	return v
}

// Validate checks every required field of the trimmed draft at once.
func Validate(d Draft) FieldErrors {
	result := make(FieldErrors, len(Fields))
	for _, f := range Fields {
		result[f] = false
	}

	fields := draftFields{
		Title:     strings.TrimSpace(d.title),
		Reference: strings.TrimSpace(d.reference),
		Category:  strings.TrimSpace(d.category),
		Author:    strings.TrimSpace(d.author),
		Sizes:     trimAll(d.sizes),
		Images:    trimAll(d.images),
	}

	err := validate.Struct(fields)
	if err == nil {
		return result
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// структура всегда валидна для валидатора, сюда попадать не должны
		for _, f := range Fields {
			result[f] = true
		}
		return result
	}

	for _, fe := range verrs {
		name := fe.Field()
		// ошибки dive приходят как sizes[0]
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		if slices.Contains(Fields, name) {
			result[name] = true
		}
	}

	return result
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
