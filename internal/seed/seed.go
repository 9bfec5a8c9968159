// Package seed загружает стартовый каталог статей.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"Devnovate/internal/models"
)

//go:embed catalog.yaml
var builtin []byte

// Catalog: структура документа сида.
type Catalog struct {
	Articles []models.Article `yaml:"articles"`
	Comments []models.Comment `yaml:"comments"`
}

// Builtin возвращает каталог, вшитый в бинарник.
func Builtin() (Catalog, error) {
	return Parse(builtin)
}

// Load читает каталог из path, при пустом path берёт встроенный.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Builtin()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse разбирает YAML-каталог и проверяет id, статусы и ссылки комментариев.
func Parse(raw []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse seed: %w", err)
	}

	seen := make(map[string]struct{}, len(cat.Articles))
	for i, a := range cat.Articles {
		if a.ID == "" {
			return Catalog{}, fmt.Errorf("parse seed: article #%d has no id", i)
		}
		if _, dup := seen[a.ID]; dup {
			return Catalog{}, fmt.Errorf("parse seed: duplicate article id %s", a.ID)
		}
		seen[a.ID] = struct{}{}
		if !a.Status.Valid() {
			return Catalog{}, fmt.Errorf("parse seed: article %s has unknown status %q", a.ID, a.Status)
		}
	}
	commentIDs := make(map[string]struct{}, len(cat.Comments))
	for i, c := range cat.Comments {
		if c.ID == "" {
			return Catalog{}, fmt.Errorf("parse seed: comment #%d has no id", i)
		}
		if _, dup := commentIDs[c.ID]; dup {
			return Catalog{}, fmt.Errorf("parse seed: duplicate comment id %s", c.ID)
		}
		commentIDs[c.ID] = struct{}{}
		if _, ok := seen[c.ArticleID]; !ok {
			return Catalog{}, fmt.Errorf("parse seed: comment %s references unknown article %s", c.ID, c.ArticleID)
		}
	}

	return cat, nil
}
