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

const goalCollectionName = "goals"

// mongoGoalRepository implements repository.GoalRepository
type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalRepository creates a new Goal repository backed by MongoDB.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
	}
}

// Create inserts a new goal.
func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	if goal.Title == "" || goal.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("goal title and user ID are required")
	}

	goal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = domain.GoalActive
	}

	if _, err := r.collection.InsertOne(ctx, goal); err != nil {
		return primitive.NilObjectID, err
	}
	return goal.ID, nil
}

// GetByID retrieves a goal owned by userID.
func (r *mongoGoalRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// List returns the user's goals matching filter, ordered by position.
func (r *mongoGoalRepository) List(ctx context.Context, userID primitive.ObjectID, filter repository.GoalFilter) ([]domain.Goal, error) {
	query := bson.M{"userId": userID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []domain.Goal{}
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Update writes the mutable fields of goal. Ownership and position are not changed here.
func (r *mongoGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == primitive.NilObjectID {
		return errors.New("goal ID is required for update")
	}

	goal.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"title":        goal.Title,
			"description":  goal.Description,
			"category":     goal.Category,
			"exerciseId":   goal.ExerciseID,
			"startValue":   goal.StartValue,
			"currentValue": goal.CurrentValue,
			"targetValue":  goal.TargetValue,
			"unit":         goal.Unit,
			"deadline":     goal.Deadline,
			"status":       goal.Status,
			"completedAt":  goal.CompletedAt,
			"archivedAt":   goal.ArchivedAt,
			"updatedAt":    goal.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": goal.ID, "userId": goal.UserID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdatePosition sets a single goal's list position.
func (r *mongoGoalRepository) UpdatePosition(ctx context.Context, id, userID primitive.ObjectID, position int) error {
	return updatePosition(ctx, r.collection, bson.M{"_id": id, "userId": userID}, position)
}

// NextPosition returns the position after the user's last goal.
func (r *mongoGoalRepository) NextPosition(ctx context.Context, userID primitive.ObjectID) (int, error) {
	return nextPosition(ctx, r.collection, bson.M{"userId": userID})
}

// Delete removes a goal owned by userID.
func (r *mongoGoalRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureGoalIndexes creates necessary indexes for the goals collection.
func EnsureGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// listing a user's goals in order
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	})
}

// updatePosition and nextPosition back the ordered lists of goals and exercises.
func updatePosition(ctx context.Context, collection *mongo.Collection, filter bson.M, position int) error {
	update := bson.M{"$set": bson.M{"position": position, "updatedAt": time.Now().UTC()}}
	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nextPosition(ctx context.Context, collection *mongo.Collection, filter bson.M) (int, error) {
	var last struct {
		Position int `bson:"position"`
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}}).SetProjection(bson.M{"position": 1})
	err := collection.FindOne(ctx, filter, opts).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return last.Position + 1, nil
}
