// internal/models/order.go
package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions lists the statuses reachable from each status.
// Delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ShippingAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Price    float64            `json:"price" bson:"price"`
}

type Order struct {
	BaseModel       `bson:",inline"`
	Buyer           primitive.ObjectID `json:"buyer" bson:"buyer"`
	Products        []OrderItem        `json:"products" bson:"products"`
	TotalAmount     float64            `json:"totalAmount" bson:"totalAmount"`
	Status          OrderStatus        `json:"status" bson:"status"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	OrderNumber     string             `json:"orderNumber" bson:"orderNumber"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// BeforeInsert runs once before the first save. The order number is never
// regenerated once set.
func (o *Order) BeforeInsert(now time.Time) error {
	o.BaseModel.BeforeInsert(now)
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.OrderNumber == "" {
		number, err := NewOrderNumber(now)
		if err != nil {
			return err
		}
		o.OrderNumber = number
	}
	return nil
}

func (o *Order) ProductIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(o.Products))
	for _, item := range o.Products {
		ids = append(ids, item.Product)
	}
	return ids
}

const orderSuffixCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewOrderNumber returns ORD-<UTC timestamp>-<6 random characters>.
// The unique index on orderNumber rejects the rare collision.
func NewOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderSuffixCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate order number: %w", err)
		}
		suffix[i] = orderSuffixCharset[n.Int64()]
	}
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102150405"), suffix), nil
}

// OrderLine is an order item with its product document populated.
type OrderLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
}

type OrderDetails struct {
	Order
	Products []OrderLine `json:"products"`
}

// Populate joins order items with the given products. Missing products
// come back as null, like a dangling reference.
func (o Order) Populate(products map[primitive.ObjectID]*Product) OrderDetails {
	lines := make([]OrderLine, 0, len(o.Products))
	for _, item := range o.Products {
		lines = append(lines, OrderLine{
			Product:  products[item.Product],
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return OrderDetails{Order: o, Products: lines}
}
