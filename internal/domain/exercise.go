// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single entry in a user's exercise catalog.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	MuscleGroup      string `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`           // e.g. "Chest", "Legs"
	Equipment        string `bson:"equipment,omitempty" json:"equipment,omitempty"`               // e.g. "Barbell", "Dumbbell"
	Category         string `bson:"category,omitempty" json:"category,omitempty"`                 // e.g. "Compound", "Isolation"
	ExecutionTechnic string `bson:"executionTechnic,omitempty" json:"executionTechnic,omitempty"` // step-by-step instructions
	Difficulty       string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`             // "Novice", "Medium", "Advanced"
	VideoURL         string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`                 // external demo link
	MediaKey         string `bson:"mediaKey,omitempty" json:"-"`                                  // object key of the uploaded demo

	IsArchived bool `bson:"isArchived" json:"isArchived"`
	Position   int  `bson:"position" json:"position"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
