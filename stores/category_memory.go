package stores

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecom-product/apperror"
	"ecom-product/models"
)

// MemoryCategoryStore is an in-memory CategoryStore used by tests and local
// development.
type MemoryCategoryStore struct {
	mu         sync.RWMutex
	categories []models.Category
}

func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{}
}

func (s *MemoryCategoryStore) Create(ctx context.Context, category models.Category) (models.Category, error) {
	category.CategoryName = models.TitleCase(category.CategoryName)
	if err := validateCategory(category); err != nil {
		return models.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.CategoryName == category.CategoryName {
			return models.Category{}, apperror.Conflict("category_name")
		}
		if existing.CategoryID == category.CategoryID {
			return models.Category{}, apperror.Conflict("category_id")
		}
	}

	now := time.Now().UTC()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now
	s.categories = append(s.categories, category)
	return category, nil
}

func (s *MemoryCategoryStore) Update(ctx context.Context, id string, patch map[string]interface{}) (models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, apperror.MalformedID()
	}

	if name, ok := patch["category_name"].(string); ok {
		if name == "" {
			return models.Category{}, apperror.Validation("Category name is required")
		}
		patch["category_name"] = models.TitleCase(name)
	}
	if imageURL, ok := patch["image_url"].(string); ok && imageURL != "" && !imageURLPattern.MatchString(imageURL) {
		return models.Category{}, apperror.Validation("Invalid image URL format")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != objID {
			continue
		}
		if name, ok := patch["category_name"].(string); ok {
			for j, other := range s.categories {
				if j != i && other.CategoryName == name {
					return models.Category{}, apperror.Conflict("category_name")
				}
			}
			s.categories[i].CategoryName = name
		}
		if categoryID, ok := patch["category_id"].(int); ok {
			for j, other := range s.categories {
				if j != i && other.CategoryID == categoryID {
					return models.Category{}, apperror.Conflict("category_id")
				}
			}
			s.categories[i].CategoryID = categoryID
		}
		if imageURL, ok := patch["image_url"].(string); ok {
			s.categories[i].ImageURL = imageURL
		}
		if isActive, ok := patch["is_active"].(bool); ok {
			s.categories[i].IsActive = isActive
		}
		s.categories[i].UpdatedAt = time.Now().UTC()
		return s.categories[i], nil
	}
	return models.Category{}, apperror.NotFound("Category not found")
}

func (s *MemoryCategoryStore) FindAll(ctx context.Context, query ListQuery) (CategoryList, error) {
	query = query.normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Category{}
	for _, category := range s.categories {
		if matchesCategory(category, query.Filters) {
			matched = append(matched, category)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CategoryName < matched[j].CategoryName
	})

	total := int64(len(matched))
	start := (query.Page - 1) * query.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return CategoryList{Rows: matched[start:end], Total: total}, nil
}

func (s *MemoryCategoryStore) FindActive(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := []models.Category{}
	for _, category := range s.categories {
		if category.IsActive {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CategoryName < categories[j].CategoryName
	})
	return categories, nil
}

// Search approximates the Mongo text search: case-insensitive token
// matching against category names, ranked by the number of matching tokens.
func (s *MemoryCategoryStore) Search(ctx context.Context, q string) ([]models.Category, error) {
	if q == "" {
		return nil, apperror.Validation("Search query is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := strings.Fields(strings.ToLower(q))
	type scored struct {
		category models.Category
		score    int
	}

	var results []scored
	for _, category := range s.categories {
		name := strings.ToLower(category.CategoryName)
		score := 0
		for _, token := range tokens {
			if strings.Contains(name, token) {
				score++
			}
		}
		if score > 0 {
			results = append(results, scored{category: category, score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	categories := []models.Category{}
	for _, result := range results {
		categories = append(categories, result.category)
	}
	return categories, nil
}

func (s *MemoryCategoryStore) ToggleStatus(ctx context.Context, id string) (models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, apperror.MalformedID()
	}

	s.mu.RLock()
	var current *models.Category
	for i := range s.categories {
		if s.categories[i].ID == objID {
			current = &s.categories[i]
			break
		}
	}
	s.mu.RUnlock()

	if current == nil {
		return models.Category{}, apperror.NotFound("Category not found")
	}
	return s.Update(ctx, id, map[string]interface{}{"is_active": !current.IsActive})
}

func matchesCategory(category models.Category, filters map[string]string) bool {
	for key, want := range filters {
		var got string
		switch key {
		case "category_name":
			got = category.CategoryName
		case "category_id":
			got = fmt.Sprint(category.CategoryID)
		case "is_active":
			got = fmt.Sprint(category.IsActive)
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}
