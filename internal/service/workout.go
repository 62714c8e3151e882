package service

import (
	"context"
	"strings"
	"time"

	"github.com/gymlog/gymlog-go/internal/model"
)

const dateLayout = "2006-01-02"

// WorkoutStore is the document store consumed by WorkoutService.
type WorkoutStore interface {
	Insert(ctx context.Context, w *model.Workout) error
	ListByUser(ctx context.Context, username string, filter model.WorkoutFilter) ([]model.Workout, error)
}

// WorkoutService handles workout logging and listing for an authenticated owner.
type WorkoutService struct {
	store WorkoutStore
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(store WorkoutStore) *WorkoutService {
	return &WorkoutService{store: store}
}

// LogWorkout validates req and stores it under owner, returning the new id.
func (s *WorkoutService) LogWorkout(ctx context.Context, owner string, req model.WorkoutRequest) (string, error) {
	if req.Username != "" && req.Username != owner {
		return "", ErrOwnerMismatch
	}
	if err := validateWorkout(req); err != nil {
		return "", err
	}

	w := &model.Workout{
		Username: owner,
		Exercise: req.Exercise,
		Sets:     *req.Sets,
		Reps:     *req.Reps,
		Weight:   *req.Weight,
		Date:     req.Date,
	}

	if err := s.store.Insert(ctx, w); err != nil {
		return "", storageErr("insert workout", err)
	}

	return w.ID.Hex(), nil
}

// ListWorkouts returns owner's workouts. The result is never nil.
func (s *WorkoutService) ListWorkouts(ctx context.Context, owner string, filter model.WorkoutFilter) ([]model.WorkoutResponse, error) {
	workouts, err := s.store.ListByUser(ctx, owner, filter)
	if err != nil {
		return nil, storageErr("list workouts", err)
	}

	return workoutsToResponse(workouts), nil
}

func validateWorkout(req model.WorkoutRequest) error {
	switch {
	case strings.TrimSpace(req.Exercise) == "":
		return invalid("exercise", "is required")
	case req.Sets == nil:
		return invalid("sets", "is required")
	case *req.Sets < 0:
		return invalid("sets", "must be non-negative")
	case req.Reps == nil:
		return invalid("reps", "is required")
	case *req.Reps < 0:
		return invalid("reps", "must be non-negative")
	case req.Weight == nil:
		return invalid("weight", "is required")
	case *req.Weight < 0:
		return invalid("weight", "must be non-negative")
	case req.Date == "":
		return invalid("date", "is required")
	}

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return invalid("date", "must be a calendar date (YYYY-MM-DD)")
	}
	return nil
}

// workoutsToResponse renders store ids as hex strings.
func workoutsToResponse(workouts []model.Workout) []model.WorkoutResponse {
	result := make([]model.WorkoutResponse, len(workouts))
	for i, w := range workouts {
		result[i] = model.WorkoutResponse{
			ID:       w.ID.Hex(),
			Username: w.Username,
			Exercise: w.Exercise,
			Sets:     w.Sets,
			Reps:     w.Reps,
			Weight:   w.Weight,
			Date:     w.Date,
		}
	}
	return result
}
