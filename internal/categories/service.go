// Package categories provides in-memory lookup over the user's
// category list. The matching engine consumes it read-only.
package categories

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// FileName is the category list file under the data root.
const FileName = "categories.csv"

// Service provides in-memory lookup over the category list.
type Service struct {
	categories []model.Category
	byID       map[string]model.Category
	byName     map[string]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(categories []model.Category) *Service {
	byID := make(map[string]model.Category, len(categories))
	byName := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
		byName[c.Name] = c
	}
	return &Service{categories: categories, byID: byID, byName: byName}
}

// Load reads categories.csv from the data root and returns a Service.
func Load(dataRoot string) (*Service, error) {
	path := filepath.Join(dataRoot, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening category list: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading category list: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by ID.
func (s *Service) Get(id string) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Exists reports whether a category ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByName resolves a category by exact case-sensitive name. This is the
// resolution rule for names returned by the AI classifier; an
// unresolved name means no categorization.
func (s *Service) ByName(name string) (model.Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// ByType returns all categories of the given type.
func (s *Service) ByType(categoryType model.CategoryType) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.Type == categoryType {
			result = append(result, c)
		}
	}
	return result
}

// Save writes the category list to <dataRoot>/categories.csv.
func (s *Service) Save(dataRoot string) error {
	path := filepath.Join(dataRoot, FileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating category list file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.categories); err != nil {
		return fmt.Errorf("writing category list: %w", err)
	}
	return nil
}
