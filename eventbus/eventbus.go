package eventbus

import (
	"context"
	"encoding/json"
)

// DefaultTopic 은 설정에 토픽이 없을 때 사용하는 도메인 이벤트 토픽이다.
const DefaultTopic = "product-compare.summary.events"

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Key     string          `json:"-"`
	Payload json.RawMessage `json:"payload"`
}

// Publisher 인터페이스는 이벤트 발행의 추상화를 정의합니다.
// 이 서비스는 발행만 하며 구독자는 별도 서비스가 담당한다.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}
