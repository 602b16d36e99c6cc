// Package stores translates application-level queries into document-store
// operations. Every method returns domain objects or a typed domain error
// from the apperror package; raw driver errors never leak to handlers.
package stores

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"ecom-product/apperror"
	"ecom-product/models"
)

// ListQuery carries pagination parameters plus pass-through equality
// filters built from the remaining query string keys.
type ListQuery struct {
	Page    int
	Limit   int
	Filters map[string]string
}

// normalize applies the pagination defaults.
func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return q
}

// ProductList is a page of products plus the unpaginated total.
type ProductList struct {
	Rows  []models.Product
	Total int64
}

// CategoryList is a page of categories plus the unpaginated total.
type CategoryList struct {
	Rows  []models.Category
	Total int64
}

// ProductStore is the data-access contract for products.
type ProductStore interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	FindAll(ctx context.Context, query ListQuery) (ProductList, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (models.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateStock(ctx context.Context, id string, quantity int) (models.Product, error)
	FindByCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	FindActive(ctx context.Context) ([]models.Product, error)
}

// CategoryStore is the data-access contract for categories. Categories are
// never hard-deleted; status toggling is the only way to retire one.
type CategoryStore interface {
	Create(ctx context.Context, category models.Category) (models.Category, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (models.Category, error)
	FindAll(ctx context.Context, query ListQuery) (CategoryList, error)
	FindActive(ctx context.Context) ([]models.Category, error)
	Search(ctx context.Context, q string) ([]models.Category, error)
	ToggleStatus(ctx context.Context, id string) (models.Category, error)
}

var imageURLPattern = regexp.MustCompile(`^https?://.+`)

// validateProduct enforces the persistence-level product constraints.
func validateProduct(p models.Product) *apperror.Error {
	var violations []string
	if p.Name == "" {
		violations = append(violations, "Product name is required")
	}
	if p.CategoryName == "" {
		violations = append(violations, "Category is required")
	}
	if p.Price < 0 {
		violations = append(violations, "Price cannot be negative")
	}
	if p.MaxPrice < 0 {
		violations = append(violations, "Price cannot be negative")
	}
	if p.Stock < 0 {
		violations = append(violations, "Stock cannot be negative")
	}
	if p.PackQt < 0 {
		violations = append(violations, "Weight cannot be negative")
	}
	if len(violations) > 0 {
		return apperror.Validation(violations...)
	}
	return nil
}

// validateProductPatch re-checks the constraints on the fields a partial
// update touches.
func validateProductPatch(patch map[string]interface{}) *apperror.Error {
	var violations []string
	if name, ok := patch["name"].(string); ok && name == "" {
		violations = append(violations, "Product name is required")
	}
	if categoryName, ok := patch["category_name"].(string); ok && categoryName == "" {
		violations = append(violations, "Category is required")
	}
	for key, message := range map[string]string{
		"price":     "Price cannot be negative",
		"max_price": "Price cannot be negative",
		"pack_qt":   "Weight cannot be negative",
	} {
		if value, ok := patch[key].(float64); ok && value < 0 {
			violations = append(violations, message)
		}
	}
	if stock, ok := patch["stock"].(int); ok && stock < 0 {
		violations = append(violations, "Stock cannot be negative")
	}
	if len(violations) > 0 {
		return apperror.Validation(violations...)
	}
	return nil
}

// validateCategory enforces the persistence-level category constraints.
func validateCategory(c models.Category) *apperror.Error {
	var violations []string
	if c.CategoryName == "" {
		violations = append(violations, "Category name is required")
	}
	if c.CategoryID == 0 {
		violations = append(violations, "Category ID is required")
	}
	if c.ImageURL != "" && !imageURLPattern.MatchString(c.ImageURL) {
		violations = append(violations, "Invalid image URL format")
	}
	if len(violations) > 0 {
		return apperror.Validation(violations...)
	}
	return nil
}

// coerceProductFilter converts a raw query-string filter value to the type
// the product field is stored as, so equality filters match documents whose
// fields are numeric or boolean. Unknown keys stay strings.
func coerceProductFilter(key, value string) interface{} {
	switch key {
	case "stock", "category_id", "subcat":
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	case "price", "max_price", "pack_qt":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case "is_active":
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return value
}

// coerceCategoryFilter is the category counterpart of coerceProductFilter.
func coerceCategoryFilter(key, value string) interface{} {
	switch key {
	case "category_id":
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	case "is_active":
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return value
}

// duplicateField names the unique category field a duplicate key error
// collided on, based on the index name embedded in the driver message.
func duplicateField(err error) string {
	if strings.Contains(err.Error(), "category_id") {
		return "category_id"
	}
	return "category_name"
}
