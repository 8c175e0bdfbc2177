package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cargoline/backoffice/internal/core/domain"
)

const collectionStatusEvents = "status_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionStatusEvents)}
}

// InsertEvent persists a status change to the status_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.StatusEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"document_id":  event.DocumentID,
		"kind":         string(event.Kind),
		"number":       event.Number,
		"from":         string(event.From),
		"to":           string(event.To),
		"timestamp":    event.Timestamp.UTC(),
		"source":       event.Source,
		"processed_at": time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}
	return nil
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "document_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}
