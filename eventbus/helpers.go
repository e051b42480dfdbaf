package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"product-compare/events"
)

// NewJSONEvent 생성: payload를 JSON으로 인코딩하여 Event를 구성합니다.
// id가 빈 문자열이면 uuid 를 생성합니다. key 는 파티션 키로 사용됩니다.
func NewJSONEvent(id, eventType, key string, payload any) (Event, error) {
	if id == "" {
		id = uuid.NewString()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("payload marshal 실패: %w", err)
	}
	return Event{
		ID:      id,
		Type:    eventType,
		Key:     key,
		Payload: b,
	}, nil
}

// PublishDomainEvent 는 events 패키지의 도메인 이벤트를 직렬화해 발행한다.
// 메시지 ID 는 도메인 이벤트 ID 를 그대로 쓰고, 같은 사용자의 이벤트가 같은 파티션으로 가도록 key 에 사용자 ID 를 넣는다.
func PublishDomainEvent(ctx context.Context, bus Publisher, topic, key string, event any) error {
	base, err := events.Describe(event)
	if err != nil {
		return err
	}
	evt, err := NewJSONEvent(base.ID, string(base.Type), key, event)
	if err != nil {
		return err
	}
	return bus.Publish(ctx, topic, evt)
}
