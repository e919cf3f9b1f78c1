package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
)

// DefaultCategories are suggested when no category file is configured.
var DefaultCategories = []string{
	"Salaire",
	"Courses",
	"Abonnements",
	"Transport",
	"Autres",
	"Loisirs",
	"Santé",
	"Remboursement",
}

// categoryFile is the YAML layout of the category suggestion file.
type categoryFile struct {
	Categories []string `yaml:"categories"`
}

type categoryCatalog struct {
	categories []string
}

// NewCategoryCatalog loads suggestions from the YAML file at path, or uses the defaults
// when path is empty.
func NewCategoryCatalog(path string) (adapter.CategoryCatalog, error) {
	if path == "" {
		return &categoryCatalog{categories: slices.Clone(DefaultCategories)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}
	return ParseCategoryCatalog(data)
}

// ParseCategoryCatalog builds a catalog from YAML content. Blank and duplicate entries
// are dropped; an empty list falls back to the defaults.
func ParseCategoryCatalog(data []byte) (adapter.CategoryCatalog, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category file: %w", err)
	}

	categories := make([]string, 0, len(file.Categories))
	for _, c := range file.Categories {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(categories, c) {
			continue
		}
		categories = append(categories, c)
	}

	if len(categories) == 0 {
		slog.Warn("Category file lists no categories, using defaults")
		categories = slices.Clone(DefaultCategories)
	}
	return &categoryCatalog{categories: categories}, nil
}

func (c *categoryCatalog) Suggestions(_ context.Context) ([]string, error) {
	return slices.Clone(c.categories), nil
}
