package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalStatus tracks the lifecycle of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalArchived  GoalStatus = "archived"
)

// GoalCategory groups goals by what they measure.
type GoalCategory string

const (
	GoalStrength   GoalCategory = "strength"
	GoalBodyweight GoalCategory = "bodyweight"
	GoalCardio     GoalCategory = "cardio"
	GoalHabit      GoalCategory = "habit"
	GoalCustom     GoalCategory = "custom"
)

// Valid reports whether c is a known category.
func (c GoalCategory) Valid() bool {
	switch c {
	case GoalStrength, GoalBodyweight, GoalCardio, GoalHabit, GoalCustom:
		return true
	}
	return false
}

// Goal is a measurable target a user works towards, e.g. "Bench 100 kg".
// Decreasing goals (bodyweight 90 -> 80) are expressed by TargetValue < StartValue.
type Goal struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Category     GoalCategory        `bson:"category" json:"category"`
	ExerciseID   *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"` // strength goals may track one lift
	StartValue   float64             `bson:"startValue" json:"startValue"`
	CurrentValue float64             `bson:"currentValue" json:"currentValue"`
	TargetValue  float64             `bson:"targetValue" json:"targetValue"`
	Unit         string              `bson:"unit,omitempty" json:"unit,omitempty"` // free-form: "kg", "min", "sessions"
	Deadline     *time.Time          `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status       GoalStatus          `bson:"status" json:"status"`
	Position     int                 `bson:"position" json:"position"`
	CompletedAt  *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	ArchivedAt   *time.Time          `bson:"archivedAt,omitempty" json:"archivedAt,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsReached reports whether CurrentValue has met TargetValue in the goal's direction.
func (g *Goal) IsReached() bool {
	if g.TargetValue >= g.StartValue {
		return g.CurrentValue >= g.TargetValue
	}
	return g.CurrentValue <= g.TargetValue
}

// ProgressPercent returns how far CurrentValue has moved from StartValue
// towards TargetValue, clamped to [0, 100]. A goal whose start equals its
// target has no distance to cover and reads 100 only once completed.
func (g *Goal) ProgressPercent() float64 {
	span := g.TargetValue - g.StartValue
	if span == 0 {
		if g.Status == GoalCompleted {
			return 100
		}
		return 0
	}
	pct := (g.CurrentValue - g.StartValue) / span * 100
	pct = math.Max(0, math.Min(100, pct))
	return math.Round(pct*10) / 10
}
