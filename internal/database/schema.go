// internal/database/schema.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/juggernaut03/kalakritBackend/internal/models"
)

// validators are the $jsonSchema rules applied when a collection is created.
var validators = map[string]bson.M{
	UsersCollection: {
		"bsonType": "object",
		"required": bson.A{"name", "email", "password", "role"},
		"properties": bson.M{
			"name":     bson.M{"bsonType": "string", "description": "Name must be a string and is required"},
			"email":    bson.M{"bsonType": "string", "description": "Email must be a string and is required"},
			"password": bson.M{"bsonType": "string", "description": "Password must be a string and is required"},
			"role":     bson.M{"enum": bson.A{"artisan", "buyer"}, "description": "Role must be either artisan or buyer"},
			"wallet":   bson.M{"bsonType": "number", "minimum": 0, "maximum": models.MaxWalletBalance, "description": "must be a non-negative number within the wallet limit"},
		},
	},
	ProductsCollection: {
		"bsonType": "object",
		"required": bson.A{"name", "price", "artisan", "category"},
		"properties": bson.M{
			"name":     bson.M{"bsonType": "string", "description": "must be a string and is required"},
			"price":    bson.M{"bsonType": "number", "minimum": 0, "description": "must be a positive number and is required"},
			"stock":    bson.M{"bsonType": "number", "minimum": 0, "description": "must be a positive number"},
			"artisan":  bson.M{"bsonType": "objectId", "description": "must reference a user"},
			"category": bson.M{"bsonType": "string", "description": "must be a string and is required"},
		},
	},
	OrdersCollection: {
		"bsonType": "object",
		"required": bson.A{"orderNumber", "buyer", "products", "totalAmount"},
		"properties": bson.M{
			"orderNumber": bson.M{"bsonType": "string", "description": "must be a string and is required"},
			"totalAmount": bson.M{"bsonType": "number", "minimum": 0, "description": "must be a positive number and is required"},
			"status": bson.M{
				"enum":        bson.A{"pending", "processing", "shipped", "delivered", "cancelled"},
				"description": "must be a known order status",
			},
		},
	},
	NotificationsCollection: {
		"bsonType": "object",
		"required": bson.A{"user", "type", "message"},
		"properties": bson.M{
			"type": bson.M{
				"enum":        bson.A{"order", "payment", "update", "promotion", "system"},
				"description": "must be one of the defined types and is required",
			},
			"read": bson.M{"bsonType": "bool", "description": "must be a boolean"},
		},
	},
}

// indexes per collection. Unique indexes back email and order number.
var indexes = map[string][]mongo.IndexModel{
	UsersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	},
	ProductsCollection: {
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
		{Keys: bson.D{{Key: "artisan", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "ratings.average", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	},
	OrdersCollection: {
		{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "buyer", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "status", Value: 1}}},
	},
	NotificationsCollection: {
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "read", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "read", Value: 1}}},
	},
}

var collectionOrder = []string{UsersCollection, ProductsCollection, OrdersCollection, NotificationsCollection}

// Initialize creates missing collections with their validators and makes
// sure every index exists. Existing collections keep their validators.
func Initialize(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, name := range collectionOrder {
		if present[name] {
			continue
		}
		logrus.WithField("collection", name).Info("Creating collection")
		opts := options.CreateCollection().SetValidator(bson.M{"$jsonSchema": validators[name]})
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed to create %s collection: %w", name, err)
		}
	}

	logrus.Info("Creating indexes...")
	for _, name := range collectionOrder {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	logrus.Info("Database initialization completed successfully")
	return nil
}
