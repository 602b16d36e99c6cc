package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a product document in the products collection
type Product struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Price        float64            `json:"price" bson:"price"`
	MaxPrice     float64            `json:"max_price" bson:"max_price"`
	Stock        int                `json:"stock" bson:"stock"`
	Images       []string           `json:"images" bson:"images"`
	CategoryName string             `json:"category_name" bson:"category_name"`
	CategoryID   int                `json:"category_id,omitempty" bson:"category_id,omitempty"`
	Subcat       int                `json:"subcat,omitempty" bson:"subcat,omitempty"`
	SubcatName   string             `json:"subcat_name,omitempty" bson:"subcat_name,omitempty"`
	PackQt       float64            `json:"pack_qt,omitempty" bson:"pack_qt,omitempty"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductPayload carries the client-supplied fields of a product create or
// update request. Pointer fields distinguish "omitted" from a zero value so
// partial updates only touch the keys the client actually sent. Unknown JSON
// keys are dropped by decoding into this struct.
type ProductPayload struct {
	Name         *string  `json:"name" validate:"omitempty,min=1"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	MaxPrice     *float64 `json:"max_price" validate:"omitempty,gte=0"`
	Stock        *int     `json:"stock" validate:"omitempty,gte=0"`
	Images       []string `json:"images" validate:"omitempty,dive,uri"`
	CategoryName *string  `json:"category_name" validate:"omitempty,min=1"`
	CategoryID   *int     `json:"category_id"`
	Subcat       *int     `json:"subcat"`
	SubcatName   *string  `json:"subcat_name"`
	PackQt       *float64 `json:"pack_qt" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"is_active"`
}

// Product builds a full product document from a validated create payload,
// applying the schema defaults (price 0, stock 0, is_active true).
func (p ProductPayload) Product() Product {
	product := Product{
		Images:   []string{},
		IsActive: true,
	}
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.MaxPrice != nil {
		product.MaxPrice = *p.MaxPrice
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Images != nil {
		product.Images = p.Images
	}
	if p.CategoryName != nil {
		product.CategoryName = *p.CategoryName
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
	if p.Subcat != nil {
		product.Subcat = *p.Subcat
	}
	if p.SubcatName != nil {
		product.SubcatName = *p.SubcatName
	}
	if p.PackQt != nil {
		product.PackQt = *p.PackQt
	}
	if p.IsActive != nil {
		product.IsActive = *p.IsActive
	}
	return product
}

// Document builds a merge-patch document containing only the fields the
// client supplied, suitable for a $set update.
func (p ProductPayload) Document() map[string]interface{} {
	doc := map[string]interface{}{}
	if p.Name != nil {
		doc["name"] = *p.Name
	}
	if p.Price != nil {
		doc["price"] = *p.Price
	}
	if p.MaxPrice != nil {
		doc["max_price"] = *p.MaxPrice
	}
	if p.Stock != nil {
		doc["stock"] = *p.Stock
	}
	if p.Images != nil {
		doc["images"] = p.Images
	}
	if p.CategoryName != nil {
		doc["category_name"] = *p.CategoryName
	}
	if p.CategoryID != nil {
		doc["category_id"] = *p.CategoryID
	}
	if p.Subcat != nil {
		doc["subcat"] = *p.Subcat
	}
	if p.SubcatName != nil {
		doc["subcat_name"] = *p.SubcatName
	}
	if p.PackQt != nil {
		doc["pack_qt"] = *p.PackQt
	}
	if p.IsActive != nil {
		doc["is_active"] = *p.IsActive
	}
	return doc
}
