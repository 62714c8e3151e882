package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gymlog/gymlog-go/internal/model"
)

// WorkoutRepository handles workout persistence in MongoDB.
type WorkoutRepository struct {
	col *mongo.Collection
}

// NewWorkoutRepository creates a new WorkoutRepository on db.
func NewWorkoutRepository(db *mongo.Database) *WorkoutRepository {
	return &WorkoutRepository{col: db.Collection(workoutsCollection)}
}

// Insert stores w and sets its generated ObjectID.
func (r *WorkoutRepository) Insert(ctx context.Context, w *model.Workout) error {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, w)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert workout: unexpected id type %T", res.InsertedID)
	}
	w.ID = oid
	return nil
}

// ListByUser returns username's workouts in insertion order.
func (r *WorkoutRepository) ListByUser(ctx context.Context, username string, filter model.WorkoutFilter) ([]model.Workout, error) {
	query := bson.M{"username": username}
	if filter.Exercise != "" {
		query["exercise"] = filter.Exercise
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}
	defer cur.Close(ctx)

	var workouts []model.Workout
	if err := cur.All(ctx, &workouts); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}
	return workouts, nil
}
