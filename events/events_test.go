package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDescribeReturnsBaseEvent(t *testing.T) {
	evt := SummaryCreatedEvent{
		BaseEvent: NewBaseEvent(SummaryCreated),
		UserID:    primitive.NewObjectID(),
		SummaryID: primitive.NewObjectID(),
		InputType: "url",
		ModelName: "gemini-2.5-flash",
	}

	base, err := Describe(evt)
	require.NoError(t, err)
	assert.Equal(t, SummaryCreated, base.Type)
	assert.Equal(t, evt.ID, base.ID)
	assert.Equal(t, SourceAPI, base.Source)
	assert.Equal(t, SchemaVersion, base.Version)
}

func TestDescribeRejectsUnknown(t *testing.T) {
	_, err := Describe(struct{}{})
	assert.Error(t, err)

	// 포인터는 발행 대상이 아니다
	_, err = Describe(&UserDeletedEvent{BaseEvent: NewBaseEvent(UserDeleted)})
	assert.Error(t, err)
}
