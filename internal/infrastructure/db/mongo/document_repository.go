package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargoline/backoffice/internal/core/domain"
	"github.com/cargoline/backoffice/internal/core/ports"
)

const (
	collectionDocuments = "documents"

	indexUniqueNumber      = "uniq_number"
	indexUniqueIdempotency = "uniq_kind_idempotency_key"
)

// DocumentRepository implements ports.DocumentRepository using MongoDB.
type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(collectionDocuments)}
}

// Create inserts a new document. Collisions on the unique number or
// idempotency key indexes map to their domain errors.
func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec, err := toDocumentRecord(d)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), indexUniqueIdempotency) {
				return domain.ErrIdempotencyConflict
			}
			return domain.ErrDuplicateNumber
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, kind domain.Kind, id string) (*domain.Document, error) {
	return r.findOne(ctx, bson.M{"_id": id, "kind": string(kind)})
}

// FindByIdempotencyKey retrieves a document that was created with the given key.
func (r *DocumentRepository) FindByIdempotencyKey(ctx context.Context, kind domain.Kind, key string) (*domain.Document, error) {
	return r.findOne(ctx, bson.M{"kind": string(kind), "idempotency_key": key})
}

func (r *DocumentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec documentRecord
	if err := r.col.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return rec.toDomain()
}

// FindLastByPrefix orders by the stored integer sequence, so suffixes wider
// than four digits still sort correctly.
func (r *DocumentRepository) FindLastByPrefix(ctx context.Context, scope string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().
		SetSort(bson.D{{Key: "sequence", Value: -1}}).
		SetProjection(bson.M{"number": 1})

	var rec struct {
		Number string `bson:"number"`
	}
	err := r.col.FindOne(ctx, bson.M{"scope": scope}, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("find last number: %w", err)
	}
	return rec.Number, nil
}

// Update rewrites the editable fields of a draft.
func (r *DocumentRepository) Update(ctx context.Context, d *domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec, err := toDocumentRecord(d)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": d.ID, "kind": string(d.Kind), "status": string(domain.StatusDraft)}
	update := bson.M{"$set": bson.M{
		"items":        rec.Items,
		"subtotal":     rec.Subtotal,
		"tax":          rec.Tax,
		"discount":     rec.Discount,
		"total_amount": rec.TotalAmount,
		"due_date":     rec.DueDate,
		"notes":        rec.Notes,
		"updated_at":   rec.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, d.ID)
	}
	return nil
}

// UpdateStatus sets the new status and appends the latest history entry
// atomically, guarded by the status the caller observed.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, d *domain.Document, from domain.Status) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if len(d.StatusHistory) == 0 {
		return fmt.Errorf("update status: document %s has no history", d.ID)
	}
	entry := historyRecord(d.StatusHistory[len(d.StatusHistory)-1])

	filter := bson.M{"_id": d.ID, "status": string(from)}
	update := bson.M{
		"$set":  bson.M{"status": string(d.Status), "updated_at": d.UpdatedAt.UTC()},
		"$push": bson.M{"status_history": entry},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, d.ID)
	}
	return nil
}

// Delete removes a draft document.
func (r *DocumentRepository) Delete(ctx context.Context, kind domain.Kind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "kind": string(kind), "status": string(domain.StatusDraft)})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.missOrConflict(ctx, id)
	}
	return nil
}

func (r *DocumentRepository) missOrConflict(ctx context.Context, id string) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count document: %w", err)
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}
	return domain.ErrConcurrentUpdate
}

// List returns a page of documents matching filter and the total count.
func (r *DocumentRepository) List(ctx context.Context, f ports.ListDocumentsFilter) ([]*domain.Document, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildListFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	limit := int64(f.Limit)
	skip := int64(f.Page-1) * limit
	if skip < 0 {
		skip = 0
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "issue_date", Value: -1}, {Key: "sequence", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find documents: %w", err)
	}
	defer cur.Close(ctx)

	var recs []documentRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, 0, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]*domain.Document, 0, len(recs))
	for i := range recs {
		d, err := recs[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, d)
	}
	return docs, total, nil
}

func buildListFilter(f ports.ListDocumentsFilter) bson.M {
	filter := bson.M{"kind": string(f.Kind)}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.Search != "" {
		filter["number"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}

	issued := bson.M{}
	if !f.IssuedFrom.IsZero() {
		issued["$gte"] = f.IssuedFrom.UTC()
	}
	if !f.IssuedTo.IsZero() {
		issued["$lte"] = f.IssuedTo.UTC()
	}
	if len(issued) > 0 {
		filter["issue_date"] = issued
	}
	if !f.DueBefore.IsZero() {
		filter["due_date"] = bson.M{"$lt": f.DueBefore.UTC()}
	}
	return filter
}

// EnsureIndexes creates necessary indexes on the documents collection.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetName(indexUniqueNumber).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "kind", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().
				SetName(indexUniqueIdempotency).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "scope", Value: 1}, {Key: "sequence", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
