package stores

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecom-product/apperror"
	"ecom-product/models"
)

// MemoryProductStore is an in-memory ProductStore used by tests and local
// development. It mirrors the Mongo store's semantics: insertion-order
// listing, equality filters, merge-patch updates and the same domain errors.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{}
}

func (s *MemoryProductStore) Create(ctx context.Context, product models.Product) (models.Product, error) {
	if err := validateProduct(product); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}
	s.products = append(s.products, product)
	return product, nil
}

func (s *MemoryProductStore) FindByID(ctx context.Context, id string) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperror.MalformedID()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, product := range s.products {
		if product.ID == objID {
			return product, nil
		}
	}
	return models.Product{}, apperror.NotFound("Product not found")
}

func (s *MemoryProductStore) FindAll(ctx context.Context, query ListQuery) (ProductList, error) {
	query = query.normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Product{}
	for _, product := range s.products {
		if matchesProduct(product, query.Filters) {
			matched = append(matched, product)
		}
	}

	total := int64(len(matched))
	start := (query.Page - 1) * query.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return ProductList{Rows: matched[start:end], Total: total}, nil
}

func (s *MemoryProductStore) Update(ctx context.Context, id string, patch map[string]interface{}) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperror.MalformedID()
	}
	if err := validateProductPatch(patch); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != objID {
			continue
		}
		applyProductPatch(&s.products[i], patch)
		s.products[i].UpdatedAt = time.Now().UTC()
		return s.products[i], nil
	}
	return models.Product{}, apperror.NotFound("Product not found")
}

func (s *MemoryProductStore) Delete(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperror.MalformedID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == objID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true, nil
		}
	}
	return false, apperror.NotFound("Product not found")
}

func (s *MemoryProductStore) UpdateStock(ctx context.Context, id string, quantity int) (models.Product, error) {
	product, err := s.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	newStock := product.Stock + quantity
	if newStock < 0 {
		return models.Product{}, apperror.Validation("Stock cannot be negative")
	}
	return s.Update(ctx, id, map[string]interface{}{"stock": newStock})
}

func (s *MemoryProductStore) FindByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := []models.Product{}
	for _, product := range s.products {
		if product.CategoryID == categoryID && product.IsActive {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *MemoryProductStore) FindActive(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := []models.Product{}
	for _, product := range s.products {
		if product.IsActive {
			products = append(products, product)
		}
	}
	return products, nil
}

// matchesProduct applies equality pass-through filters against a product's
// document fields, comparing stringified values the way raw query
// parameters arrive.
func matchesProduct(product models.Product, filters map[string]string) bool {
	for key, want := range filters {
		var got string
		switch key {
		case "name":
			got = product.Name
		case "price":
			got = fmt.Sprint(product.Price)
		case "max_price":
			got = fmt.Sprint(product.MaxPrice)
		case "stock":
			got = fmt.Sprint(product.Stock)
		case "category_name":
			got = product.CategoryName
		case "category_id":
			got = fmt.Sprint(product.CategoryID)
		case "subcat":
			got = fmt.Sprint(product.Subcat)
		case "subcat_name":
			got = product.SubcatName
		case "is_active":
			got = fmt.Sprint(product.IsActive)
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}

func applyProductPatch(product *models.Product, patch map[string]interface{}) {
	for key, value := range patch {
		switch key {
		case "name":
			product.Name = value.(string)
		case "price":
			product.Price = value.(float64)
		case "max_price":
			product.MaxPrice = value.(float64)
		case "stock":
			product.Stock = value.(int)
		case "images":
			product.Images = value.([]string)
		case "category_name":
			product.CategoryName = value.(string)
		case "category_id":
			product.CategoryID = value.(int)
		case "subcat":
			product.Subcat = value.(int)
		case "subcat_name":
			product.SubcatName = value.(string)
		case "pack_qt":
			product.PackQt = value.(float64)
		case "is_active":
			product.IsActive = value.(bool)
		}
	}
}
