package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"product-compare/db"
	"product-compare/models"
)

// SummaryRepository stores per-user summaries.
// Every read and delete takes the owner id; there is no unscoped accessor.
type SummaryRepository struct {
	col *mongo.Collection
}

func NewSummaryRepository(d *mongo.Database) *SummaryRepository {
	return &SummaryRepository{col: d.Collection(db.CollectionSummaries)}
}

// Insert creates a new summary document and fills in its ID.
func (r *SummaryRepository) Insert(ctx context.Context, s *models.Summary) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.Extracted == nil {
		s.Extracted = bson.M{}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

// ListByOwner returns all summaries of the owner sorted by created_at desc.
// A non-empty query restricts the result with the text index.
func (r *SummaryRepository) ListByOwner(ctx context.Context, userID primitive.ObjectID, query string) ([]models.Summary, error) {
	filter := bson.M{"user_id": userID}
	if q := strings.TrimSpace(query); q != "" {
		filter["$text"] = bson.M{"$search": q}
	}
	findOpts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	return r.find(ctx, filter, findOpts)
}

// FindByIDAndOwner returns ErrNotFound when the summary does not exist or belongs to another user.
func (r *SummaryRepository) FindByIDAndOwner(ctx context.Context, id, userID primitive.ObjectID) (*models.Summary, error) {
	var s models.Summary
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByIDsAndOwner returns the owner's summaries among ids, in the store's natural order.
func (r *SummaryRepository) FindByIDsAndOwner(ctx context.Context, ids []primitive.ObjectID, userID primitive.ObjectID) ([]models.Summary, error) {
	filter := bson.M{
		"_id":     bson.M{"$in": ids},
		"user_id": userID,
	}
	return r.find(ctx, filter, options.Find())
}

// DeleteByIDAndOwner returns ErrNotFound when nothing matched.
func (r *SummaryRepository) DeleteByIDAndOwner(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByOwner removes every summary of the owner and returns the deleted count.
func (r *SummaryRepository) DeleteAllByOwner(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SummaryRepository) find(ctx context.Context, filter bson.M, findOpts *options.FindOptions) ([]models.Summary, error) {
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := []models.Summary{}
	for cur.Next(ctx) {
		var s models.Summary
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
