// internal/repository/mongodb/users.go
package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/database"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.col.InsertOne(ctx, user)
	return translate("insert user", err)
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translate("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

// IncrementWallet is a single conditional $inc. A debit only matches while
// the balance covers it and a credit only while the result stays within
// models.MaxWalletBalance, so the balance never leaves [0, max].
func (r *UserRepository) IncrementWallet(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error) {
	filter := bson.M{"_id": id}
	switch {
	case amount < 0:
		filter["wallet"] = bson.M{"$gte": -amount}
	case amount > 0:
		filter["wallet"] = bson.M{"$lte": models.MaxWalletBalance - amount}
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"wallet": 1})

	var doc struct {
		Wallet float64 `bson:"wallet"`
	}
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"wallet": amount}}, opts).Decode(&doc)
	if err == nil {
		return doc.Wallet, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, translate("increment wallet", err)
	}

	// No match: the user is gone or the amount is out of range.
	count, countErr := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if countErr != nil {
		return 0, translate("count user", countErr)
	}
	if count == 0 {
		return 0, apperrors.Wrap(apperrors.ErrNotFound, "", err)
	}
	if amount > 0 {
		return 0, apperrors.New(apperrors.ErrInvalidInput, "")
	}
	return 0, apperrors.New(apperrors.ErrInsufficientFunds, "")
}
