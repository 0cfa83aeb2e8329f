package eventbus

import (
	"context"
	"errors"
	"fmt"
)

var ErrPayloadType = errors.New("unexpected payload type")

// Topic binds an event name to the payload type its listeners receive.
type Topic[T any] struct {
	name string
}

func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

func (t Topic[T]) Name() string {
	return t.name
}

func Subscribe[T any](b *Bus, t Topic[T], fn func(ctx context.Context, payload T) error, opts ...Option) Unsubscribe {
	return b.On(t.name, typed(t, fn), opts...)
}

func SubscribeOnce[T any](b *Bus, t Topic[T], fn func(ctx context.Context, payload T) error, opts ...Option) Unsubscribe {
	return b.Once(t.name, typed(t, fn), opts...)
}

// Publish is Emit with a payload checked against the topic at compile time.
func Publish[T any](ctx context.Context, e Emitter, t Topic[T], payload T) {
	e.Emit(ctx, t.name, payload)
}

// PublishSync is EmitSync with a payload checked against the topic at
// compile time.
func PublishSync[T any](ctx context.Context, e Emitter, t Topic[T], payload T) {
	e.EmitSync(ctx, t.name, payload)
}

func typed[T any](t Topic[T], fn func(ctx context.Context, payload T) error) Listener {
	return func(ctx context.Context, payload any) error {
		v, ok := payload.(T)
		if !ok {
			return fmt.Errorf("%w: topic %q got %T", ErrPayloadType, t.name, payload)
		}
		return fn(ctx, v)
	}
}
