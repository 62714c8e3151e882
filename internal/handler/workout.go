package handler

import (
	"net/http"

	"github.com/gymlog/gymlog-go/internal/middleware"
	"github.com/gymlog/gymlog-go/internal/model"
	"github.com/gymlog/gymlog-go/internal/service"
)

// WorkoutHandler handles HTTP requests for the authenticated user's workouts.
type WorkoutHandler struct {
	service *service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(svc *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: svc}
}

// HandleLogWorkout handles POST /workouts requests.
func (h *WorkoutHandler) HandleLogWorkout(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("unauthorized"))
		return
	}

	var req model.WorkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.service.LogWorkout(r.Context(), username, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.WorkoutCreatedResponse{
		Msg: "Workout logged successfully",
		ID:  id,
	})
}

// HandleListWorkouts handles GET /workouts requests. An optional ?exercise=
// query narrows the result.
func (h *WorkoutHandler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("unauthorized"))
		return
	}

	filter := model.WorkoutFilter{Exercise: r.URL.Query().Get("exercise")}

	workouts, err := h.service.ListWorkouts(r.Context(), username, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workouts)
}
