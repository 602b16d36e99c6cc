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

// MongoCategoryStore is the MongoDB-backed CategoryStore.
type MongoCategoryStore struct {
	collection *mongo.Collection
}

func NewMongoCategoryStore(client *mongo.Client, database string) *MongoCategoryStore {
	return &MongoCategoryStore{
		collection: client.Database(database).Collection("categories"),
	}
}

// Create persists a new category. The name is normalized to title case
// before every save; category_name and category_id must both be unique.
func (s *MongoCategoryStore) Create(ctx context.Context, category models.Category) (models.Category, error) {
	category.CategoryName = models.TitleCase(category.CategoryName)
	if err := validateCategory(category); err != nil {
		return models.Category{}, err
	}

	now := time.Now().UTC()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Category{}, apperror.Conflict(duplicateField(err))
		}
		return models.Category{}, err
	}
	return category, nil
}

// Update applies a merge-patch to a category, re-normalizing the name when
// it changes.
func (s *MongoCategoryStore) Update(ctx context.Context, id string, patch map[string]interface{}) (models.Category, error) {
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

	set := bson.M{"updated_at": time.Now().UTC()}
	for key, value := range patch {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var category models.Category
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Category{}, apperror.NotFound("Category not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.Category{}, apperror.Conflict(duplicateField(err))
		}
		return models.Category{}, err
	}
	return category, nil
}

// FindAll returns one page of categories sorted by name plus the total
// count.
func (s *MongoCategoryStore) FindAll(ctx context.Context, query ListQuery) (CategoryList, error) {
	query = query.normalize()

	filter := bson.M{}
	for key, value := range query.Filters {
		filter[key] = coerceCategoryFilter(key, value)
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return CategoryList{}, err
	}

	skip := (query.Page - 1) * query.Limit
	opts := options.Find().
		SetLimit(int64(query.Limit)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "category_name", Value: 1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return CategoryList{}, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return CategoryList{}, err
	}

	return CategoryList{Rows: categories, Total: total}, nil
}

// FindActive returns the active categories sorted by name.
func (s *MongoCategoryStore) FindActive(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category_name", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Search runs a text search over category names, ordered by descending
// relevance score. An empty query is a validation failure.
func (s *MongoCategoryStore) Search(ctx context.Context, q string) ([]models.Category, error) {
	if q == "" {
		return nil, apperror.Validation("Search query is required")
	}

	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})

	cursor, err := s.collection.Find(ctx, bson.M{"$text": bson.M{"$search": q}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ToggleStatus flips is_active and persists the category. Read-modify-write:
// concurrent toggles on the same category can lose an update.
func (s *MongoCategoryStore) ToggleStatus(ctx context.Context, id string) (models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, apperror.MalformedID()
	}

	var current models.Category
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&current)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Category{}, apperror.NotFound("Category not found")
		}
		return models.Category{}, err
	}

	return s.Update(ctx, id, map[string]interface{}{"is_active": !current.IsActive})
}
