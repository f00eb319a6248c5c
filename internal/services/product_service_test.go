package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
)

func newProductRequest(category string, images ...string) *CreateProductRequest {
	return &CreateProductRequest{
		Name:        "Clay pot",
		Description: "Hand thrown " + category,
		Price:       number(450),
		Category:    category,
		Stock:       number(3),
		Images:      images,
	}
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv()
	artisan := env.register("Asha", "asha@example.com", "artisan")

	product, err := env.products.CreateProduct(context.Background(), artisan.User.ID, "artisan",
		newProductRequest("Pottery", "aGVsbG8=", "d29ybGQ="))
	require.NoError(t, err)

	assert.False(t, product.ID.IsZero())
	assert.Equal(t, artisan.User.ID, product.Artisan.Hex())
	assert.Equal(t, 450.0, product.Price)
	assert.Equal(t, 3, product.Stock)
	assert.Len(t, product.Images, 2)
	assert.Equal(t, fixedNow, product.CreatedAt)

	found, err := env.products.GetProduct(context.Background(), product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, product.Images, found.Images)
}

func TestCreateProductSkipsFailedImages(t *testing.T) {
	env := newTestEnv()
	artisan := env.register("Asha", "asha@example.com", "artisan")

	product, err := env.products.CreateProduct(context.Background(), artisan.User.ID, "artisan",
		newProductRequest("Pottery", "aGVsbG8=", "bad", "d29ybGQ="))
	require.NoError(t, err)
	assert.Len(t, product.Images, 2)
}

func TestCreateProductRequiresArtisan(t *testing.T) {
	env := newTestEnv()
	buyer := env.register("Ravi", "ravi@example.com", "buyer")

	_, err := env.products.CreateProduct(context.Background(), buyer.User.ID, "buyer", newProductRequest("Pottery"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, env.images.stored)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv()
	artisan := env.register("Asha", "asha@example.com", "artisan")

	req := newProductRequest("Pottery")
	req.Price = number(-1)
	_, err := env.products.CreateProduct(context.Background(), artisan.User.ID, "artisan", req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	req = newProductRequest("")
	_, err = env.products.CreateProduct(context.Background(), artisan.User.ID, "artisan", req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateProductRejectsMalformedNumbers(t *testing.T) {
	env := newTestEnv()
	artisan := env.register("Asha", "asha@example.com", "artisan")
	ctx := context.Background()

	tests := []struct {
		name  string
		price float64
		stock float64
	}{
		{"fractional stock", 450, 2.9},
		{"stock beyond int range", 450, 1e20},
		{"negative stock", 450, -3},
		{"infinite price", math.Inf(1), 3},
		{"NaN price", math.NaN(), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newProductRequest("Pottery", "aGVsbG8=")
			req.Price = number(tt.price)
			req.Stock = number(tt.stock)
			_, err := env.products.CreateProduct(ctx, artisan.User.ID, "artisan", req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, 400, apperrors.StatusCode(err))
		})
	}

	products, err := env.products.GetProducts(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, env.images.stored)
}

func TestCreateProductDeletesImagesWhenSaveFails(t *testing.T) {
	env := newTestEnv()
	artisan := env.register("Asha", "asha@example.com", "artisan")
	products := NewProductService(failingProducts{env.store.Products()}, env.images, testClock)

	_, err := products.CreateProduct(context.Background(), artisan.User.ID, "artisan",
		newProductRequest("Pottery", "aGVsbG8=", "d29ybGQ="))
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.StatusCode(err))
	assert.ElementsMatch(t, env.images.stored, env.images.deleted)
	assert.Len(t, env.images.deleted, 2)
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv()
	artisan := env.register("Asha", "asha@example.com", "artisan")
	ctx := context.Background()

	for _, category := range []string{"Pottery", "Textile", "Pottery"} {
		_, err := env.products.CreateProduct(ctx, artisan.User.ID, "artisan", newProductRequest(category))
		require.NoError(t, err)
	}

	all, err := env.products.GetProducts(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pottery, err := env.products.GetProducts(ctx, "Pottery", "")
	require.NoError(t, err)
	assert.Len(t, pottery, 2)

	none, err := env.products.GetProducts(ctx, "Jewelry", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetProductsByArtisan(t *testing.T) {
	env := newTestEnv()
	asha := env.register("Asha", "asha@example.com", "artisan")
	meera := env.register("Meera", "meera@example.com", "artisan")
	ctx := context.Background()

	for _, id := range []string{asha.User.ID, asha.User.ID, meera.User.ID} {
		_, err := env.products.CreateProduct(ctx, id, "artisan", newProductRequest("Pottery"))
		require.NoError(t, err)
	}

	mine, err := env.products.GetProducts(ctx, "", asha.User.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, p := range mine {
		assert.Equal(t, asha.User.ID, p.Artisan.Hex())
	}

	none, err := env.products.GetProducts(ctx, "Textile", meera.User.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.products.GetProducts(ctx, "", "not-an-id")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetProductErrors(t *testing.T) {
	env := newTestEnv()

	_, err := env.products.GetProduct(context.Background(), "xyz")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.products.GetProduct(context.Background(), "65f000000000000000000000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv()
	artisan := env.register("Asha", "asha@example.com", "artisan")
	ctx := context.Background()

	for _, category := range []string{"Pottery", "Pottery", "Textile", "Pottery"} {
		_, err := env.products.CreateProduct(ctx, artisan.User.ID, "artisan", newProductRequest(category, "aGVsbG8="))
		require.NoError(t, err)
	}

	categories, err := env.products.GetCategories(ctx)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Name] = c.Products
		assert.Equal(t, "Hand thrown "+c.Name, c.Description)
		assert.NotEmpty(t, c.Icon)
	}
	assert.Equal(t, map[string]int{"Pottery": 3, "Textile": 1}, counts)
}
