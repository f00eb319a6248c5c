package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/juggernaut03/kalakritBackend/internal/models"
	"github.com/juggernaut03/kalakritBackend/internal/repository/memory"
	"github.com/juggernaut03/kalakritBackend/internal/storage"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return fixedNow }

// fakeImages accepts every image except the literal "bad".
type fakeImages struct {
	mu      sync.Mutex
	stored  []string
	deleted []string
}

func (f *fakeImages) Store(ctx context.Context, imageData string) (*storage.Object, error) {
	if imageData == "bad" {
		return nil, errors.New("upload rejected")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("kalakriti_products/img-%d", len(f.stored))
	f.stored = append(f.stored, key)
	return &storage.Object{URL: "https://cdn.example.com/" + key, Key: key}, nil
}

func (f *fakeImages) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

// failingProducts rejects every insert.
type failingProducts struct {
	*memory.ProductRepository
}

func (failingProducts) Create(ctx context.Context, product *models.Product) error {
	return errors.New("connection reset")
}

type testEnv struct {
	store         *memory.Store
	jwt           *utils.JWTManager
	auth          *AuthService
	products      *ProductService
	orders        *OrderService
	wallet        *WalletService
	notifications *NotificationService
	images        *fakeImages
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	images := &fakeImages{}
	notifications := NewNotificationService(store.Notifications(), testClock)

	return &testEnv{
		store:         store,
		jwt:           jwt,
		auth:          NewAuthService(store.Users(), jwt, testClock),
		products:      NewProductService(store.Products(), images, testClock),
		orders:        NewOrderService(store.Orders(), store.Products(), notifications, testClock),
		wallet:        NewWalletService(store.Users(), notifications),
		notifications: notifications,
		images:        images,
	}
}

func (e *testEnv) register(name, email, role string) *AuthResponse {
	resp, err := e.auth.Register(context.Background(), &RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		panic(err)
	}
	return resp
}

func number(v float64) *models.Number {
	n := models.Number(v)
	return &n
}
