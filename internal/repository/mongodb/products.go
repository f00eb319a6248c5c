// internal/repository/mongodb/products.go
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

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(database.ProductsCollection)}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.col.InsertOne(ctx, product)
	return translate("insert product", err)
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate("find product", err)
	}
	return &product, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// List returns matching products, newest first.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if !filter.Artisan.IsZero() {
		query["artisan"] = filter.Artisan
	}
	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *ProductRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Product, error) {
	findOpts := []*options.FindOptions{}
	if opts != nil {
		findOpts = append(findOpts, opts)
	}

	cursor, err := r.col.Find(ctx, query, findOpts...)
	if err != nil {
		return nil, translate("find products", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, translate("decode products", err)
	}
	return products, nil
}

// categoryPipeline groups products in insertion order, so the first
// product of each category supplies the description and the icon.
func categoryPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$category",
			"products":    bson.M{"$sum": 1},
			"description": bson.M{"$first": "$description"},
			"image":       bson.M{"$first": "$images"},
		}}},
		{{Key: "$project", Value: bson.M{
			"name":        "$_id",
			"icon":        bson.M{"$arrayElemAt": bson.A{"$image", 0}},
			"description": 1,
			"products":    1,
			"_id":         0,
		}}},
	}
}

func (r *ProductRepository) Categories(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.col.Aggregate(ctx, categoryPipeline())
	if err != nil {
		return nil, translate("aggregate categories", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, translate("decode categories", err)
	}
	return categories, nil
}
