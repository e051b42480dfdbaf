package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"product-compare/models"
)

func summaryDoc(id, userID primitive.ObjectID, raw string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: userID},
		{Key: "raw_input", Value: raw},
		{Key: "ai_summary", Value: "## 요약"},
		{Key: "tags", Value: bson.A{"blender"}},
		{Key: "created_at", Value: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestSummaryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	userID := primitive.NewObjectID()
	summaryID := primitive.NewObjectID()

	mt.Run("insert fills id and defaults", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := &models.Summary{UserID: userID, RawInput: "blender 1200W"}
		require.NoError(mt, repo.Insert(context.Background(), s))

		assert.False(mt, s.ID.IsZero())
		assert.False(mt, s.CreatedAt.IsZero())
		assert.NotNil(mt, s.Extracted)
		assert.Equal(mt, []string{}, s.Tags)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
		assert.Equal(mt, userID, evt.Command.Lookup("documents", "0", "user_id").ObjectID())
	})

	mt.Run("list scopes by owner and sorts newest first", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.summaries", mtest.FirstBatch,
			summaryDoc(summaryID, userID, "blender"),
		))

		got, err := repo.ListByOwner(context.Background(), userID, "")
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, summaryID, got[0].ID)
		assert.Equal(mt, "blender", got[0].RawInput)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, userID, evt.Command.Lookup("filter", "user_id").ObjectID())

		_, err = evt.Command.Lookup("filter").Document().LookupErr("$text")
		assert.Error(mt, err, "no text search without query")

		first := evt.Command.Lookup("sort").Document().Index(0)
		assert.Equal(mt, "created_at", first.Key())
		assert.Equal(mt, int64(-1), first.Value().AsInt64())
	})

	mt.Run("list with query adds text search", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.summaries", mtest.FirstBatch))

		got, err := repo.ListByOwner(context.Background(), userID, "  blender ")
		require.NoError(mt, err)
		assert.Empty(mt, got)
		assert.NotNil(mt, got)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, userID, evt.Command.Lookup("filter", "user_id").ObjectID())
		assert.Equal(mt, "blender", evt.Command.Lookup("filter", "$text", "$search").StringValue())
	})

	mt.Run("find by id is owner scoped", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.summaries", mtest.FirstBatch,
			summaryDoc(summaryID, userID, "blender"),
		))

		got, err := repo.FindByIDAndOwner(context.Background(), summaryID, userID)
		require.NoError(mt, err)
		assert.Equal(mt, summaryID, got.ID)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, summaryID, evt.Command.Lookup("filter", "_id").ObjectID())
		assert.Equal(mt, userID, evt.Command.Lookup("filter", "user_id").ObjectID())
	})

	mt.Run("find by id of another owner is not found", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.summaries", mtest.FirstBatch))

		got, err := repo.FindByIDAndOwner(context.Background(), summaryID, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
		assert.Nil(mt, got)
	})

	mt.Run("find by ids is owner scoped", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		otherID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.summaries", mtest.FirstBatch,
			summaryDoc(summaryID, userID, "blender"),
			summaryDoc(otherID, userID, "mixer"),
		))

		got, err := repo.FindByIDsAndOwner(context.Background(), []primitive.ObjectID{summaryID, otherID}, userID)
		require.NoError(mt, err)
		require.Len(mt, got, 2)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, userID, evt.Command.Lookup("filter", "user_id").ObjectID())
		assert.Equal(mt, summaryID, evt.Command.Lookup("filter", "_id", "$in", "0").ObjectID())
		assert.Equal(mt, otherID, evt.Command.Lookup("filter", "_id", "$in", "1").ObjectID())
	})

	mt.Run("delete is owner scoped", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, repo.DeleteByIDAndOwner(context.Background(), summaryID, userID))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "delete", evt.CommandName)
		assert.Equal(mt, summaryID, evt.Command.Lookup("deletes", "0", "q", "_id").ObjectID())
		assert.Equal(mt, userID, evt.Command.Lookup("deletes", "0", "q", "user_id").ObjectID())
	})

	mt.Run("delete with no match is not found", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteByIDAndOwner(context.Background(), summaryID, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete all by owner returns count", func(mt *mtest.T) {
		repo := NewSummaryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		n, err := repo.DeleteAllByOwner(context.Background(), userID)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, userID, evt.Command.Lookup("deletes", "0", "q", "user_id").ObjectID())
		assert.Equal(mt, int64(0), evt.Command.Lookup("deletes", "0", "limit").AsInt64())
	})
}
