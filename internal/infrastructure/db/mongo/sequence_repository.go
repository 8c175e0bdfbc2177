package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// SequenceRepository keeps one counter document per numbering scope.
type SequenceRepository struct {
	col *mongo.Collection
}

func NewSequenceRepository(db *mongo.Database) *SequenceRepository {
	return &SequenceRepository{col: db.Collection(collectionCounters)}
}

// Next raises the counter to floor when it lags behind the persisted
// documents, then increments it in a single findOneAndUpdate.
func (r *SequenceRepository) Next(ctx context.Context, scope string, floor int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raise := bson.M{"$max": bson.M{"value": floor}}
	upsert := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": scope}, raise, upsert); err != nil {
		// Two first-time upserts of the same scope race on _id; the loser
		// retries against the now existing document.
		if !mongo.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("seed counter %s: %w", scope, err)
		}
		if _, err := r.col.UpdateOne(ctx, bson.M{"_id": scope}, raise); err != nil {
			return 0, fmt.Errorf("seed counter %s: %w", scope, err)
		}
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": scope}, bson.M{"$inc": bson.M{"value": int64(1)}}, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", scope, err)
	}
	return counter.Value, nil
}
