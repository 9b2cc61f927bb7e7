// internal/domain/program.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program is a user-built training program made of ordered days.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"` // e.g. "5/3/1 BBB"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"` // at most one active program per user
	Days        []ProgramDay       `bson:"days" json:"days"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProgramDay is one session in a program, e.g. "Day 1: Squat".
type ProgramDay struct {
	Name      string            `bson:"name" json:"name"`
	Exercises []ProgramExercise `bson:"exercises" json:"exercises"`
}

// ProgramExercise prescribes sets and reps of a catalog exercise.
type ProgramExercise struct {
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets         int                `bson:"sets" json:"sets"`
	Reps         string             `bson:"reps" json:"reps"` // "5", "8-12", "AMRAP"
	TargetWeight float64            `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"`
	Unit         WeightUnit         `bson:"unit,omitempty" json:"unit,omitempty"`
	RestSeconds  int                `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ExerciseIDs returns every exercise referenced by the program, without duplicates.
func (p *Program) ExerciseIDs() []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, d := range p.Days {
		for _, ex := range d.Exercises {
			if _, ok := seen[ex.ExerciseID]; ok {
				continue
			}
			seen[ex.ExerciseID] = struct{}{}
			ids = append(ids, ex.ExerciseID)
		}
	}
	return ids
}
