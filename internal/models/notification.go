// internal/models/notification.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Notification struct {
	BaseModel `bson:",inline"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Type      NotificationType   `json:"type" bson:"type"`
	Message   string             `json:"message" bson:"message"`
	Read      bool               `json:"read" bson:"read"`
}
