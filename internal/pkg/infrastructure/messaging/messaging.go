package messaging

import (
	"context"
	"errors"
)

type TopicMessage interface {
	TopicName() string
	ContentType() string
	Body() []byte
}

//go:generate moq -rm -out publisher_mock.go . Publisher

type Publisher interface {
	PublishOnTopic(ctx context.Context, message TopicMessage) error
}

type multi []Publisher

// Multi publishes every message to all publishers. Every publisher is tried
// even if an earlier one fails; the failures are joined.
func Multi(publishers ...Publisher) Publisher {
	p := multi{}
	for _, pub := range publishers {
		if pub != nil {
			p = append(p, pub)
		}
	}
	return p
}

func (m multi) PublishOnTopic(ctx context.Context, message TopicMessage) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishOnTopic(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
