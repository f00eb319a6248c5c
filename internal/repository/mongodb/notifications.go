// internal/repository/mongodb/notifications.go
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/juggernaut03/kalakritBackend/internal/database"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(database.NotificationsCollection)}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	_, err := r.col.InsertOne(ctx, notification)
	return translate("insert notification", err)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user": user}, opts)
	if err != nil {
		return nil, translate("find notifications", err)
	}

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, translate("decode notifications", err)
	}
	return notifications, nil
}

// MarkRead only matches the owner's notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, user primitive.ObjectID) (*models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notification models.Notification
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user": user},
		bson.M{"$set": bson.M{"read": true}},
		opts,
	).Decode(&notification)
	if err != nil {
		return nil, translate("mark notification read", err)
	}
	return &notification, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, user primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"user": user, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, translate("mark notifications read", err)
	}
	return res.ModifiedCount, nil
}
