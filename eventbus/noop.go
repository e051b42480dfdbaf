package eventbus

import "context"

// NoopBus 는 eventbus.enabled=false 일 때 사용하는 Publisher 다.
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, topic string, event Event) error { return nil }

func (NoopBus) Close() {}
