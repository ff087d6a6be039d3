package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

type testMessage struct{}

func (m *testMessage) TopicName() string   { return "test.topic" }
func (m *testMessage) ContentType() string { return "application/json" }
func (m *testMessage) Body() []byte        { return []byte(`{}`) }

func TestMultiPublishesToAll(t *testing.T) {
	is := is.New(t)

	first := &PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message TopicMessage) error {
			return errors.New("broker down")
		},
	}
	second := &PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message TopicMessage) error {
			return nil
		},
	}

	err := Multi(first, nil, second).PublishOnTopic(context.Background(), &testMessage{})

	is.True(err != nil)
	is.Equal(len(first.PublishOnTopicCalls()), 1)
	is.Equal(len(second.PublishOnTopicCalls()), 1)
	is.Equal(second.PublishOnTopicCalls()[0].Message.TopicName(), "test.topic")
}

func TestThatEmptyMultiIsNoop(t *testing.T) {
	is := is.New(t)
	is.NoErr(Multi().PublishOnTopic(context.Background(), &testMessage{}))
}

func TestAsyncPublishesInQueueOrder(t *testing.T) {
	is := is.New(t)

	topics := make(chan string, 3)
	next := &PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message TopicMessage) error {
			topics <- message.TopicName()
			return nil
		},
	}

	a := NewAsync(next, 3, zerolog.Nop())

	is.NoErr(a.PublishOnTopic(context.Background(), &namedMessage{"first"}))
	is.NoErr(a.PublishOnTopic(context.Background(), &namedMessage{"second"}))
	is.NoErr(a.PublishOnTopic(context.Background(), &namedMessage{"third"}))

	a.Close()

	is.Equal(<-topics, "first")
	is.Equal(<-topics, "second")
	is.Equal(<-topics, "third")
}

func TestAsyncDoesNotBlockOnSlowPublisher(t *testing.T) {
	is := is.New(t)

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	next := &PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message TopicMessage) error {
			started <- struct{}{}
			<-release
			return nil
		},
	}

	a := NewAsync(next, 1, zerolog.Nop())

	is.NoErr(a.PublishOnTopic(context.Background(), &testMessage{}))
	<-started

	is.NoErr(a.PublishOnTopic(context.Background(), &testMessage{}))
	is.True(errors.Is(a.PublishOnTopic(context.Background(), &testMessage{}), ErrQueueFull))

	close(release)
	a.Close()

	is.Equal(len(next.PublishOnTopicCalls()), 2)
	is.True(errors.Is(a.PublishOnTopic(context.Background(), &testMessage{}), ErrClosed))
}

func TestAsyncOutlivesCallerContext(t *testing.T) {
	is := is.New(t)

	next := &PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message TopicMessage) error {
			return ctx.Err()
		},
	}

	a := NewAsync(next, 1, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	is.NoErr(a.PublishOnTopic(ctx, &testMessage{}))
	cancel()
	a.Close()

	is.Equal(len(next.PublishOnTopicCalls()), 1)
	is.NoErr(next.PublishOnTopicCalls()[0].Ctx.Err())
}

type namedMessage struct{ topic string }

func (m *namedMessage) TopicName() string   { return m.topic }
func (m *namedMessage) ContentType() string { return "application/json" }
func (m *namedMessage) Body() []byte        { return []byte(`{}`) }
