package mongo

import (
	"context"
	"errors"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const equipmentCollectionName = "equipment"

// mongoEquipmentRepository implements repository.EquipmentRepository
type mongoEquipmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEquipmentRepository creates a new Equipment repository backed by MongoDB.
func NewMongoEquipmentRepository(db *mongo.Database) repository.EquipmentRepository {
	return &mongoEquipmentRepository{
		collection: db.Collection(equipmentCollectionName),
	}
}

// GetByUserID retrieves the user's equipment document.
func (r *mongoEquipmentRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Equipment, error) {
	var equipment domain.Equipment
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&equipment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// Save replaces the user's equipment document, inserting it on first save.
func (r *mongoEquipmentRepository) Save(ctx context.Context, equipment *domain.Equipment) error {
	if equipment.UserID == primitive.NilObjectID {
		return errors.New("equipment requires a user ID")
	}

	now := time.Now().UTC()
	if equipment.ID == primitive.NilObjectID {
		equipment.ID = primitive.NewObjectID()
	}
	if equipment.CreatedAt.IsZero() {
		equipment.CreatedAt = now
	}
	equipment.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"userId": equipment.UserID}, equipment, opts)
	return err
}

// EnsureEquipmentIndexes creates necessary indexes for the equipment collection.
func EnsureEquipmentIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
