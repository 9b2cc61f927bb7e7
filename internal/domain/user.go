package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that owns goals, exercises, programs, workouts and equipment.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`    // unique
	PasswordHash  string             `bson:"passwordHash" json:"-"` // never exposed
	PreferredUnit WeightUnit         `bson:"preferredUnit" json:"preferredUnit"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
