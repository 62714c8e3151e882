package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gymlog/gymlog-go/internal/model"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// MongoUserRepository stores users in the users collection. Uniqueness relies on
// the index created by EnsureIndexes.
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository on db.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection(usersCollection)}
}

// Create inserts user and sets its hex ObjectID. A taken username returns ErrDuplicateUsername.
func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, userDocument{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

// GetByUsername retrieves a user by username, or ErrUserNotFound.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var doc userDocument
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &model.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
