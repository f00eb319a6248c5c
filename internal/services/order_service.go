// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/metrics"
	"github.com/juggernaut03/kalakritBackend/internal/models"
)

type OrderService struct {
	orders   OrderRepository
	products ProductRepository
	notifier Notifier
	now      Clock
}

type OrderItemRequest struct {
	Product  string         `json:"product" validate:"required,objectid"`
	Quantity int            `json:"quantity" validate:"required,min=1"`
	Price    *models.Number `json:"price" validate:"required,finite,min=0"`
}

type ShippingAddressRequest struct {
	Street     string `json:"street" validate:"notblank"`
	City       string `json:"city" validate:"notblank"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode" validate:"notblank"`
	Country    string `json:"country" validate:"notblank"`
}

type CreateOrderRequest struct {
	Products        []OrderItemRequest     `json:"products" validate:"required,min=1,dive"`
	TotalAmount     *models.Number         `json:"totalAmount" validate:"required,finite,min=0"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,order_status"`
}

func NewOrderService(orders OrderRepository, products ProductRepository, notifier Notifier, now Clock) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		notifier: notifier,
		now:      now,
	}
}

// CreateOrder places a new order for the buyer. New orders always start
// as pending; the order number is assigned once, before the insert.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID string, req *CreateOrderRequest) (*models.Order, error) {
	buyer, err := parseID(buyerID, "user")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	order := &models.Order{
		Buyer:       buyer,
		Products:    make([]models.OrderItem, 0, len(req.Products)),
		TotalAmount: req.TotalAmount.Float(),
		Status:      models.OrderStatusPending,
		ShippingAddress: models.ShippingAddress{
			Street:     req.ShippingAddress.Street,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
	}
	for _, item := range req.Products {
		productID, _ := primitive.ObjectIDFromHex(item.Product)
		order.Products = append(order.Products, models.OrderItem{
			Product:  productID,
			Quantity: item.Quantity,
			Price:    item.Price.Float(),
		})
	}

	if err := order.BeforeInsert(s.now()); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.Wrap(apperrors.ErrConflict, i18n.KeyOrderNumberTaken, err)
		}
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logrus.WithFields(logrus.Fields{
		"order_id":     order.ID.Hex(),
		"order_number": order.OrderNumber,
		"buyer_id":     buyerID,
	}).Info("Order placed")

	if s.notifier != nil {
		s.notifier.Notify(ctx, buyer, models.NotificationTypeOrder,
			i18n.T(i18n.DefaultLang, i18n.KeyOrderPlaced, order.OrderNumber))
	}

	return order, nil
}

// GetOrders lists the buyer's orders with their products populated.
func (s *OrderService) GetOrders(ctx context.Context, buyerID string) ([]models.OrderDetails, error) {
	buyer, err := parseID(buyerID, "user")
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}

	products, err := s.productIndex(ctx, orders...)
	if err != nil {
		return nil, err
	}

	details := make([]models.OrderDetails, 0, len(orders))
	for _, order := range orders {
		details = append(details, order.Populate(products))
	}
	return details, nil
}

// GetOrder returns one of the buyer's orders. Orders of other buyers are
// reported as missing.
func (s *OrderService) GetOrder(ctx context.Context, id, buyerID string) (*models.OrderDetails, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Buyer.Hex() != buyerID {
		return nil, apperrors.NotFound(i18n.KeyOrderNotFound)
	}

	products, err := s.productIndex(ctx, *order)
	if err != nil {
		return nil, err
	}
	details := order.Populate(products)
	return &details, nil
}

// UpdateStatus moves an order along the status machine. Buyers may only
// cancel their own orders; artisans may move orders that contain one of
// their products.
func (s *OrderService) UpdateStatus(ctx context.Context, id, userID, role string, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canChangeStatus(ctx, order, userID, models.Role(role), req.Status)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.New(apperrors.ErrForbidden, i18n.KeyOrderForbidden)
	}

	from := order.Status
	if !from.CanTransitionTo(req.Status) {
		return nil, apperrors.New(apperrors.ErrInvalidTransition, i18n.KeyOrderInvalidTransition, from, req.Status)
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, from, req.Status, s.now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Someone else moved the order first.
			return nil, apperrors.New(apperrors.ErrInvalidTransition, i18n.KeyOrderInvalidTransition, from, req.Status)
		}
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(from), string(req.Status)).Inc()
	logrus.WithFields(logrus.Fields{
		"order_id": order.ID.Hex(),
		"from":     from,
		"to":       req.Status,
		"user_id":  userID,
	}).Info("Order status changed")

	if s.notifier != nil {
		s.notifier.Notify(ctx, updated.Buyer, models.NotificationTypeUpdate,
			i18n.T(i18n.DefaultLang, i18n.KeyOrderStatusChanged, updated.OrderNumber, updated.Status))
	}

	return updated, nil
}

func (s *OrderService) canChangeStatus(ctx context.Context, order *models.Order, userID string, role models.Role, to models.OrderStatus) (bool, error) {
	if order.Buyer.Hex() == userID && to == models.OrderStatusCancelled {
		return true, nil
	}
	if role != models.RoleArtisan {
		return false, nil
	}

	products, err := s.products.FindByIDs(ctx, order.ProductIDs())
	if err != nil {
		return false, fmt.Errorf("failed to load order products: %w", err)
	}
	for _, product := range products {
		if product.Artisan.Hex() == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *OrderService) findOrder(ctx context.Context, id string) (*models.Order, error) {
	oid, err := parseID(id, "order")
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(i18n.KeyOrderNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) productIndex(ctx context.Context, orders ...models.Order) (map[primitive.ObjectID]*models.Product, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, order := range orders {
		for _, id := range order.ProductIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	index := make(map[primitive.ObjectID]*models.Product, len(ids))
	if len(ids) == 0 {
		return index, nil
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to populate order products: %w", err)
	}
	for i := range products {
		index[products[i].ID] = &products[i]
	}
	return index, nil
}
