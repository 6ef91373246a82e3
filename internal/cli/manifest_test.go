package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Manifest
		wantErr error
		anyErr  bool
	}{
		{
			name: "two entries",
			input: `
paintings:
  - title: Marea
    category: sea
    author: Ana
    reference: R-1
    sizes: ["60 x 60 cm", "100 x 80 cm"]
    images: [marea.png]
  - title: Alba
    images: []
`,
			want: Manifest{Paintings: []ManifestEntry{
				{
					Title: "Marea", Category: "sea", Author: "Ana", Reference: "R-1",
					Sizes:  []string{"60 x 60 cm", "100 x 80 cm"},
					Images: []string{"marea.png"},
				},
				{Title: "Alba", Images: []string{}},
			}},
		},
		{
			name:    "empty document",
			input:   "",
			wantErr: ErrEmptyManifest,
		},
		{
			name:    "no paintings",
			input:   "paintings: []\n",
			wantErr: ErrEmptyManifest,
		},
		{
			name:   "unknown field",
			input:  "paintings:\n  - titel: typo\n",
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest(strings.NewReader(tt.input))

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLoadManifest_ResolvesRelativeImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paintings.yaml")

	require.NoError(t, os.WriteFile(path, []byte(`
paintings:
  - title: Marea
    images: [img/marea.png, /abs/other.png]
`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "img", "marea.png"), "/abs/other.png"}, m.Paintings[0].Images)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
