// internal/models/common.go
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base document with common fields
type BaseModel struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// BeforeInsert assigns the id and creation time of a new document.
func (b *BaseModel) BeforeInsert(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now.UTC()
	}
}

// Number decodes from either a JSON number or a numeric string.
// Mobile clients post form values such as "120" for prices. Only finite
// values are accepted.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("invalid number %q", raw)
	}
	*n = Number(value)
	return nil
}

func (n *Number) Float() float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}

// Enums
type Role string

const (
	RoleArtisan Role = "artisan"
	RoleBuyer   Role = "buyer"
)

func (r Role) Valid() bool {
	return r == RoleArtisan || r == RoleBuyer
}

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
)

type NotificationType string

const (
	NotificationTypeOrder     NotificationType = "order"
	NotificationTypePayment   NotificationType = "payment"
	NotificationTypeUpdate    NotificationType = "update"
	NotificationTypePromotion NotificationType = "promotion"
	NotificationTypeSystem    NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeOrder, NotificationTypePayment, NotificationTypeUpdate,
		NotificationTypePromotion, NotificationTypeSystem:
		return true
	}
	return false
}
