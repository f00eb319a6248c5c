// internal/models/product.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	BaseModel   `bson:",inline"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	Stock       int                `json:"stock" bson:"stock"`
	Images      []string           `json:"images" bson:"images"`
	Artisan     primitive.ObjectID `json:"artisan" bson:"artisan"`
	Ratings     *Ratings           `json:"ratings,omitempty" bson:"ratings,omitempty"`
}

type Ratings struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type ProductFilter struct {
	Category string
	Artisan  primitive.ObjectID
}

// Category is the on-demand grouping of products by their category field.
type Category struct {
	Name        string `json:"name" bson:"name"`
	Icon        string `json:"icon" bson:"icon"`
	Description string `json:"description" bson:"description"`
	Products    int    `json:"products" bson:"products"`
}
