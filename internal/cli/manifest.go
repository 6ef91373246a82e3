package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrEmptyManifest = errors.New("manifest lists no paintings")

// Manifest описывает пакет работ для импорта
type Manifest struct {
	Paintings []ManifestEntry `yaml:"paintings"`
}

type ManifestEntry struct {
	Title     string   `yaml:"title"`
	Category  string   `yaml:"category"`
	Author    string   `yaml:"author"`
	Reference string   `yaml:"reference"`
	Sizes     []string `yaml:"sizes"`
	// Images пути к файлам, относительные пути считаются от каталога манифеста
	Images []string `yaml:"images"`
}

func ParseManifest(r io.Reader) (Manifest, error) {
	var m Manifest

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Manifest{}, ErrEmptyManifest
		}
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	if len(m.Paintings) == 0 {
		return Manifest{}, ErrEmptyManifest
	}

	return m, nil
}

// LoadManifest reads path and resolves image paths against its directory.
func LoadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Paintings {
		for j, img := range m.Paintings[i].Images {
			if !filepath.IsAbs(img) {
				m.Paintings[i].Images[j] = filepath.Join(base, img)
			}
		}
	}

	return m, nil
}
