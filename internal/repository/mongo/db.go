package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Connect is lazy; ping the primary to make sure the server actually answers.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection concurrently.
// A failure on one collection does not stop the others; the first error is returned.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ensurers := map[string]func(context.Context, *mongo.Collection) error{
		userCollectionName:      EnsureUserIndexes,
		goalCollectionName:      EnsureGoalIndexes,
		exerciseCollectionName:  EnsureExerciseIndexes,
		uploadCollectionName:    EnsureUploadIndexes,
		equipmentCollectionName: EnsureEquipmentIndexes,
		programCollectionName:   EnsureProgramIndexes,
		workoutCollectionName:   EnsureWorkoutIndexes,
	}

	var g errgroup.Group
	for name, ensure := range ensurers {
		name, ensure := name, ensure
		g.Go(func() error {
			if err := ensure(ctx, db.Collection(name)); err != nil {
				log.Printf("WARN: Failed to create indexes for collection %s: %v", name, err)
				return fmt.Errorf("indexes for %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// createIndexes is shared by the EnsureXIndexes helpers.
func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) error {
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
