package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise into the database.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise name and owner ID are required")
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return primitive.NilObjectID, err
	}
	return exercise.ID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List retrieves the owner's exercises matching filter, ordered by position.
// Search is a case-insensitive substring match on the name.
func (r *mongoExerciseRepository) List(ctx context.Context, ownerID primitive.ObjectID, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	query := bson.M{"ownerId": ownerID}
	if !filter.IncludeArchived {
		query["isArchived"] = false
	}
	if filter.MuscleGroup != "" {
		query["muscleGroup"] = filter.MuscleGroup
	}
	if filter.Equipment != "" {
		query["equipment"] = filter.Equipment
	}
	if filter.Search != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update modifies an existing exercise.
// The owner, archive flag, media key and position are changed through their own methods.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == primitive.NilObjectID {
		return errors.New("exercise ID is required for update")
	}
	if exercise.Name == "" {
		return errors.New("exercise name cannot be empty")
	}

	exercise.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":             exercise.Name,
			"description":      exercise.Description,
			"muscleGroup":      exercise.MuscleGroup,
			"equipment":        exercise.Equipment,
			"category":         exercise.Category,
			"executionTechnic": exercise.ExecutionTechnic,
			"difficulty":       exercise.Difficulty,
			"videoUrl":         exercise.VideoURL,
			"updatedAt":        exercise.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID, "ownerId": exercise.OwnerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetArchived archives or restores an exercise.
func (r *mongoExerciseRepository) SetArchived(ctx context.Context, id, ownerID primitive.ObjectID, archived bool) error {
	return r.set(ctx, id, ownerID, bson.M{"isArchived": archived})
}

// SetMediaKey links an uploaded demo file to the exercise.
func (r *mongoExerciseRepository) SetMediaKey(ctx context.Context, id, ownerID primitive.ObjectID, key string) error {
	return r.set(ctx, id, ownerID, bson.M{"mediaKey": key})
}

func (r *mongoExerciseRepository) set(ctx context.Context, id, ownerID primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdatePosition sets a single exercise's list position.
func (r *mongoExerciseRepository) UpdatePosition(ctx context.Context, id, ownerID primitive.ObjectID, position int) error {
	return updatePosition(ctx, r.collection, bson.M{"_id": id, "ownerId": ownerID}, position)
}

// NextPosition returns the position after the owner's last exercise.
func (r *mongoExerciseRepository) NextPosition(ctx context.Context, ownerID primitive.ObjectID) (int, error) {
	return nextPosition(ctx, r.collection, bson.M{"ownerId": ownerID})
}

// Delete removes an exercise, ensuring it belongs to the specified owner.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	// Filtering on both fields means a non-owner sees the same ErrNotFound as a missing id.
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "muscleGroup", Value: 1}},
			Options: options.Index(),
		},
	})
}
