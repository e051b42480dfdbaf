package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	SummaryCreated EventType = "summary.created"
	SummaryDeleted EventType = "summary.deleted"
	UserDeleted    EventType = "user.deleted"
)

const (
	SourceAPI     = "api"
	SchemaVersion = "1"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    SourceAPI,
		Version:   SchemaVersion,
	}
}

// SummaryCreatedEvent 요약 저장 완료 이벤트
type SummaryCreatedEvent struct {
	BaseEvent
	UserID    primitive.ObjectID `json:"user_id"`
	SummaryID primitive.ObjectID `json:"summary_id"`
	InputType string             `json:"input_type"`
	SourceURL *string            `json:"source_url"`
	ModelName string             `json:"model_name"`
	Fallback  bool               `json:"fallback"`
}

// SummaryDeletedEvent 요약 단건 삭제 이벤트
type SummaryDeletedEvent struct {
	BaseEvent
	UserID    primitive.ObjectID `json:"user_id"`
	SummaryID primitive.ObjectID `json:"summary_id"`
}

// UserDeletedEvent 사용자 탈퇴(요약 일괄 삭제 포함) 이벤트
type UserDeletedEvent struct {
	BaseEvent
	UserID           primitive.ObjectID `json:"user_id"`
	DeletedSummaries int64              `json:"deleted_summaries"`
}

// Describe 는 알려진 도메인 이벤트의 BaseEvent 를 돌려준다. 발행 시 메시지 ID 와 타입으로 사용된다.
func Describe(event any) (BaseEvent, error) {
	switch e := event.(type) {
	case SummaryCreatedEvent:
		return e.BaseEvent, nil
	case SummaryDeletedEvent:
		return e.BaseEvent, nil
	case UserDeletedEvent:
		return e.BaseEvent, nil
	default:
		return BaseEvent{}, fmt.Errorf("unknown event type: %T", event)
	}
}
