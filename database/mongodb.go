package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecom-product/config"
)

// Connect initializes the MongoDB client and verifies the connection.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	// Check the connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// EnsureIndexes creates the indexes the stores rely on: text search on
// product and category names, the category lookup indexes on products, and
// the uniqueness constraints on category_name and category_id.
func EnsureIndexes(ctx context.Context, client *mongo.Client, database string) error {
	products := client.Database(database).Collection("products")
	_, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: "text"}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "subcat", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	})
	if err != nil {
		return err
	}

	unique := options.Index().SetUnique(true)
	categories := client.Database(database).Collection("categories")
	_, err = categories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_name", Value: "text"}}},
		{Keys: bson.D{{Key: "category_name", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "category_id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	})
	return err
}
