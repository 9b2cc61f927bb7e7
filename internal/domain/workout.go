package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a logged training session.
type Workout struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	ProgramID       *primitive.ObjectID `bson:"programId,omitempty" json:"programId,omitempty"` // set when following a program
	Name            string              `bson:"name" json:"name"`
	PerformedAt     time.Time           `bson:"performedAt" json:"performedAt"`
	DurationMinutes int                 `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Entries         []WorkoutEntry      `bson:"entries" json:"entries"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutEntry groups the sets performed for one exercise.
type WorkoutEntry struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       []SetLog           `bson:"sets" json:"sets"`
}

// SetLog is a single performed set.
type SetLog struct {
	Reps     int        `bson:"reps" json:"reps"`
	Weight   float64    `bson:"weight" json:"weight"`
	Unit     WeightUnit `bson:"unit" json:"unit"`
	RPE      *float64   `bson:"rpe,omitempty" json:"rpe,omitempty"`
	IsWarmup bool       `bson:"isWarmup" json:"isWarmup"`
}
