package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/gymlog/gymlog-go/internal/model"
)

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create sets hex id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
		require.NoError(mt, repo.Create(context.Background(), user))
		_, err := primitive.ObjectIDFromHex(user.ID)
		assert.NoError(mt, err)
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create duplicate username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Create(context.Background(), &model.User{Username: "alice"})
		require.ErrorIs(mt, err, ErrDuplicateUsername)
	})

	mt.Run("get by username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym_tracker.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "a@x.com"},
			{Key: "password_hash", Value: "h"},
		}))

		user, err := repo.GetByUsername(context.Background(), "alice")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), user.ID)
		assert.Equal(mt, "a@x.com", user.Email)
		assert.Equal(mt, "h", user.PasswordHash)
	})

	mt.Run("get by username not found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym_tracker.users", mtest.FirstBatch))

		_, err := repo.GetByUsername(context.Background(), "ghost")
		require.ErrorIs(mt, err, ErrUserNotFound)
	})
}

func TestWorkoutRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert assigns object id", func(mt *mtest.T) {
		repo := NewWorkoutRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := &model.Workout{Username: "alice", Exercise: "squat", Sets: 3, Reps: 5, Weight: 100, Date: "2024-01-01"}
		require.NoError(mt, repo.Insert(context.Background(), w))
		assert.False(mt, w.ID.IsZero())
		assert.False(mt, w.CreatedAt.IsZero())
	})

	mt.Run("insert failure", func(mt *mtest.T) {
		repo := NewWorkoutRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Message: "shutdown in progress",
		}))

		err := repo.Insert(context.Background(), &model.Workout{Username: "alice"})
		require.Error(mt, err)
	})

	mt.Run("list decodes documents", func(mt *mtest.T) {
		repo := NewWorkoutRepository(mt.DB)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym_tracker.workouts", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: first},
				{Key: "username", Value: "alice"},
				{Key: "exercise", Value: "squat"},
				{Key: "sets", Value: int32(3)},
				{Key: "reps", Value: int32(5)},
				{Key: "weight", Value: 100.0},
				{Key: "date", Value: "2024-01-01"},
				{Key: "created_at", Value: created},
			},
			bson.D{
				{Key: "_id", Value: second},
				{Key: "username", Value: "alice"},
				{Key: "exercise", Value: "bench"},
				{Key: "sets", Value: int32(5)},
				{Key: "reps", Value: int32(5)},
				{Key: "weight", Value: 72.5},
				{Key: "date", Value: "2024-01-02"},
				{Key: "created_at", Value: created},
			},
		))

		workouts, err := repo.ListByUser(context.Background(), "alice", model.WorkoutFilter{})
		require.NoError(mt, err)
		require.Len(mt, workouts, 2)
		assert.Equal(mt, model.Workout{
			ID:        first,
			Username:  "alice",
			Exercise:  "squat",
			Sets:      3,
			Reps:      5,
			Weight:    100,
			Date:      "2024-01-01",
			CreatedAt: created,
		}, workouts[0])
		assert.Equal(mt, second, workouts[1].ID)
		assert.Equal(mt, 72.5, workouts[1].Weight)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := NewWorkoutRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "gym_tracker.workouts", mtest.FirstBatch))

		workouts, err := repo.ListByUser(context.Background(), "alice", model.WorkoutFilter{Exercise: "squat"})
		require.NoError(mt, err)
		assert.Empty(mt, workouts)
	})

	mt.Run("list failure", func(mt *mtest.T) {
		repo := NewWorkoutRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		_, err := repo.ListByUser(context.Background(), "alice", model.WorkoutFilter{})
		require.Error(mt, err)
	})
}
