package stores

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecom-product/apperror"
	"ecom-product/models"
)

// MongoProductStore is the MongoDB-backed ProductStore.
type MongoProductStore struct {
	collection *mongo.Collection
}

func NewMongoProductStore(client *mongo.Client, database string) *MongoProductStore {
	return &MongoProductStore{
		collection: client.Database(database).Collection("products"),
	}
}

// Create persists a new product after re-checking the schema constraints.
func (s *MongoProductStore) Create(ctx context.Context, product models.Product) (models.Product, error) {
	if err := validateProduct(product); err != nil {
		return models.Product{}, err
	}

	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}

	if _, err := s.collection.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, apperror.Conflict(duplicateField(err))
		}
		return models.Product{}, apperror.New("Failed to create product", 400)
	}
	return product, nil
}

// FindByID fetches a single product by its hex ObjectID.
func (s *MongoProductStore) FindByID(ctx context.Context, id string) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperror.MalformedID()
	}

	var product models.Product
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, apperror.NotFound("Product not found")
		}
		return models.Product{}, err
	}
	return product, nil
}

// FindAll returns one page of products in insertion order plus the total
// count. Filter keys are matched by equality as-is.
func (s *MongoProductStore) FindAll(ctx context.Context, query ListQuery) (ProductList, error) {
	query = query.normalize()

	filter := bson.M{}
	for key, value := range query.Filters {
		filter[key] = coerceProductFilter(key, value)
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return ProductList{}, err
	}

	skip := (query.Page - 1) * query.Limit
	opts := options.Find().
		SetLimit(int64(query.Limit)).
		SetSkip(int64(skip))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return ProductList{}, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return ProductList{}, err
	}

	return ProductList{Rows: products, Total: total}, nil
}

// Update applies a merge-patch: only the supplied keys change. The updated
// document is returned.
func (s *MongoProductStore) Update(ctx context.Context, id string, patch map[string]interface{}) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, apperror.MalformedID()
	}
	if err := validateProductPatch(patch); err != nil {
		return models.Product{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for key, value := range patch {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, apperror.NotFound("Product not found")
		}
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes a product permanently.
func (s *MongoProductStore) Delete(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperror.MalformedID()
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	if result.DeletedCount == 0 {
		return false, apperror.NotFound("Product not found")
	}
	return true, nil
}

// UpdateStock adjusts a product's stock by quantity. This is a
// read-modify-write sequence: concurrent adjustments on the same product
// can lose an update.
func (s *MongoProductStore) UpdateStock(ctx context.Context, id string, quantity int) (models.Product, error) {
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

// FindByCategory returns the active products of one category.
func (s *MongoProductStore) FindByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"category_id": categoryID, "is_active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindActive returns every active product.
func (s *MongoProductStore) FindActive(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
