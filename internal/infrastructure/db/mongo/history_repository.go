package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/authgrid/auth-service/internal/core/domain"
)

const historyCollection = "user_history"

// HistoryRepository is the append-only activity log backed by MongoDB.
// Documents are inserted once and never updated or deleted.
type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(historyCollection)}
}

type historyDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserID   string             `bson:"user_id"`
	Activity string             `bson:"activity"`
	Created  time.Time          `bson:"created"`
}

// Append records one activity for the user.
func (r *HistoryRepository) Append(ctx context.Context, userID, activity string) error {
	doc := historyDoc{
		UserID:   userID,
		Activity: activity,
		Created:  time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// List returns one page of the user's history, newest first.
func (r *HistoryRepository) List(ctx context.Context, userID string, page, perPage int64) ([]domain.HistoryEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created", Value: -1}}).
		SetSkip((page - 1) * perPage).
		SetLimit(perPage)

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.HistoryEntry
	for cur.Next(ctx) {
		var doc historyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
		entries = append(entries, domain.HistoryEntry{
			ID:        doc.ID.Hex(),
			UserID:    doc.UserID,
			Activity:  doc.Activity,
			CreatedAt: doc.Created,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
