// internal/repository/mongodb/orders.go
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/juggernaut03/kalakritBackend/internal/database"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.OrdersCollection)}
}

// Create inserts the order. BeforeInsert is the pre-save hook and only
// fills in what is still missing.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := order.BeforeInsert(time.Now()); err != nil {
		return err
	}
	_, err := r.col.InsertOne(ctx, order)
	return translate("insert order", err)
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate("find order", err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"buyer": buyer}, opts)
	if err != nil {
		return nil, translate("find orders", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, translate("decode orders", err)
	}
	return orders, nil
}

// UpdateStatus is a compare-and-set on the current status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (*models.Order, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at.UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order); err != nil {
		return nil, translate("update order status", err)
	}
	return &order, nil
}
