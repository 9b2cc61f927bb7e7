package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrBarbellNotFound = errors.New("barbell not found")
	ErrPlateNotFound   = errors.New("plate type not found")
	ErrInvalidWeight   = errors.New("weight must be greater than zero")
	ErrInvalidUnit     = errors.New("unit must be lb or kg")
)

// Barbell is a bar the user owns. Only one barbell in an Equipment set is active.
type Barbell struct {
	ID       primitive.ObjectID `bson:"id" json:"id"`
	Label    string             `bson:"label" json:"label"`
	Weight   float64            `bson:"weight" json:"weight"`
	Unit     WeightUnit         `bson:"unit" json:"unit"`
	IsActive bool               `bson:"isActive" json:"isActive"`
}

// PlateType is one weight denomination in the user's inventory.
// AvailableCount is the total number of plates owned, both sides combined.
type PlateType struct {
	ID             primitive.ObjectID `bson:"id" json:"id"`
	Weight         float64            `bson:"weight" json:"weight"`
	Unit           WeightUnit         `bson:"unit" json:"unit"`
	AvailableCount int                `bson:"availableCount" json:"availableCount"`
	ColorTag       string             `bson:"colorTag,omitempty" json:"colorTag,omitempty"`
}

// Equipment holds a user's barbells and plate inventory. One document per user.
type Equipment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Barbells  []Barbell          `bson:"barbells" json:"barbells"`
	Plates    []PlateType        `bson:"plates" json:"plates"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ActiveBarbell returns the active barbell, if any.
func (e *Equipment) ActiveBarbell() (Barbell, bool) {
	for _, b := range e.Barbells {
		if b.IsActive {
			return b, true
		}
	}
	return Barbell{}, false
}

// PlatesFor returns the plate types stored in unit u, in declaration order.
func (e *Equipment) PlatesFor(u WeightUnit) []PlateType {
	var out []PlateType
	for _, p := range e.Plates {
		if p.Unit == u {
			out = append(out, p)
		}
	}
	return out
}

// AddBarbell appends a new barbell. The first barbell added to an empty set becomes active.
func (e *Equipment) AddBarbell(label string, weight float64, unit WeightUnit) (Barbell, error) {
	if weight <= 0 {
		return Barbell{}, ErrInvalidWeight
	}
	if !unit.Valid() {
		return Barbell{}, ErrInvalidUnit
	}
	b := Barbell{
		ID:       primitive.NewObjectID(),
		Label:    label,
		Weight:   weight,
		Unit:     unit,
		IsActive: len(e.Barbells) == 0,
	}
	e.Barbells = append(e.Barbells, b)
	return b, nil
}

// SetActiveBarbell makes id the only active barbell.
func (e *Equipment) SetActiveBarbell(id primitive.ObjectID) error {
	idx := e.barbellIndex(id)
	if idx < 0 {
		return ErrBarbellNotFound
	}
	for i := range e.Barbells {
		e.Barbells[i].IsActive = i == idx
	}
	return nil
}

// RemoveBarbell deletes a barbell. If it was active, the first remaining barbell takes over.
func (e *Equipment) RemoveBarbell(id primitive.ObjectID) error {
	idx := e.barbellIndex(id)
	if idx < 0 {
		return ErrBarbellNotFound
	}
	wasActive := e.Barbells[idx].IsActive
	e.Barbells = append(e.Barbells[:idx], e.Barbells[idx+1:]...)
	if wasActive && len(e.Barbells) > 0 {
		e.Barbells[0].IsActive = true
	}
	return nil
}

// AddPlate appends a new plate type. Negative counts are stored as zero.
func (e *Equipment) AddPlate(weight float64, unit WeightUnit, count int, colorTag string) (PlateType, error) {
	if weight <= 0 {
		return PlateType{}, ErrInvalidWeight
	}
	if !unit.Valid() {
		return PlateType{}, ErrInvalidUnit
	}
	p := PlateType{
		ID:             primitive.NewObjectID(),
		Weight:         weight,
		Unit:           unit,
		AvailableCount: max(0, count),
		ColorTag:       colorTag,
	}
	e.Plates = append(e.Plates, p)
	return p, nil
}

// AdjustPlateCount increments or decrements a plate type's count. The count never drops below zero.
func (e *Equipment) AdjustPlateCount(id primitive.ObjectID, delta int) (PlateType, error) {
	idx := e.plateIndex(id)
	if idx < 0 {
		return PlateType{}, ErrPlateNotFound
	}
	e.Plates[idx].AvailableCount = max(0, e.Plates[idx].AvailableCount+delta)
	return e.Plates[idx], nil
}

// RemovePlate deletes a plate type from the inventory.
func (e *Equipment) RemovePlate(id primitive.ObjectID) error {
	idx := e.plateIndex(id)
	if idx < 0 {
		return ErrPlateNotFound
	}
	e.Plates = append(e.Plates[:idx], e.Plates[idx+1:]...)
	return nil
}

func (e *Equipment) barbellIndex(id primitive.ObjectID) int {
	for i, b := range e.Barbells {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (e *Equipment) plateIndex(id primitive.ObjectID) int {
	for i, p := range e.Plates {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// DefaultEquipment seeds a commercial-gym setup for a new user. The standard
// bar for defaultUnit is active.
func DefaultEquipment(userID primitive.ObjectID, defaultUnit WeightUnit) *Equipment {
	e := &Equipment{UserID: userID}

	e.AddBarbell("Olympic Bar", 45, UnitLb)
	e.AddBarbell("Women's Bar", 35, UnitLb)
	kgBar, _ := e.AddBarbell("Olympic Bar (kg)", 20, UnitKg)
	e.AddBarbell("Technique Bar", 15, UnitKg)
	if defaultUnit == UnitKg {
		_ = e.SetActiveBarbell(kgBar.ID)
	}

	lbPlates := []struct {
		w     float64
		color string
	}{{45, "blue"}, {35, "yellow"}, {25, "green"}, {10, "white"}, {5, "black"}, {2.5, "silver"}}
	for _, p := range lbPlates {
		e.AddPlate(p.w, UnitLb, 4, p.color)
	}

	kgPlates := []struct {
		w     float64
		color string
	}{{25, "red"}, {20, "blue"}, {15, "yellow"}, {10, "green"}, {5, "white"}, {2.5, "black"}, {1.25, "silver"}}
	for _, p := range kgPlates {
		e.AddPlate(p.w, UnitKg, 4, p.color)
	}

	return e
}
