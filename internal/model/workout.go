package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a single logged exercise as stored in the workouts collection.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Exercise  string             `bson:"exercise"`
	Sets      int                `bson:"sets"`
	Reps      int                `bson:"reps"`
	Weight    float64            `bson:"weight"`
	Date      string             `bson:"date"`
	CreatedAt time.Time          `bson:"created_at"`
}

// WorkoutRequest is the body of POST /workouts. Numeric fields are pointers so
// an absent field can be told apart from an explicit zero.
type WorkoutRequest struct {
	Username string   `json:"username"`
	Exercise string   `json:"exercise"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	Weight   *float64 `json:"weight"`
	Date     string   `json:"date"`
}

// WorkoutFilter narrows a workout listing.
type WorkoutFilter struct {
	Exercise string
}

// WorkoutResponse renders a workout with its identifier as a plain string.
type WorkoutResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
	Date     string  `json:"date"`
}

// WorkoutCreatedResponse is returned by POST /workouts.
type WorkoutCreatedResponse struct {
	Msg string `json:"msg"`
	ID  string `json:"id"`
}
