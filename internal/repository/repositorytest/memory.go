// Package repositorytest provides in-memory stores with the same uniqueness and
// ordering semantics as the database repositories, for use in tests.
package repositorytest

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gymlog/gymlog-go/internal/model"
	"github.com/gymlog/gymlog-go/internal/repository"
)

// MemoryUserRepository is a process-local credential store with the same
// uniqueness semantics as the database backends.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]model.User
	nextID int64
}

// NewMemoryUserRepository returns an empty user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}

	r.nextID++
	user.ID = strconv.FormatInt(r.nextID, 10)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

// MemoryWorkoutRepository is a process-local workout store that keeps insertion order.
type MemoryWorkoutRepository struct {
	mu       sync.RWMutex
	workouts []model.Workout
}

// NewMemoryWorkoutRepository returns an empty workout store.
func NewMemoryWorkoutRepository() *MemoryWorkoutRepository {
	return &MemoryWorkoutRepository{}
}

func (r *MemoryWorkoutRepository) Insert(_ context.Context, w *model.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w.ID = primitive.NewObjectID()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	r.workouts = append(r.workouts, *w)
	return nil
}

func (r *MemoryWorkoutRepository) ListByUser(_ context.Context, username string, filter model.WorkoutFilter) ([]model.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Workout
	for _, w := range r.workouts {
		if w.Username != username {
			continue
		}
		if filter.Exercise != "" && w.Exercise != filter.Exercise {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}
