package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
)

const eventSource string = "github.com/diwise/smartbox-telemetry"

// EventSender forwards topic messages as CloudEvents to the HTTP subscribers
// configured for the message's topic.
type EventSender interface {
	messaging.Publisher
}

type eventSender struct {
	subscribers map[string][]SubscriberConfig
	client      cloudevents.Client
}

func New(cfg *Config) (EventSender, error) {
	e := &eventSender{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			e.subscribers[s.Type] = append(e.subscribers[s.Type], s.Subscribers...)
		}
	}

	if len(e.subscribers) == 0 {
		return e, nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, err
	}
	e.client = c

	return e, nil
}

func (e *eventSender) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	subscribers, ok := e.subscribers[message.TopicName()]
	if !ok || len(subscribers) == 0 {
		return nil
	}

	var err error

	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetTime(time.Now().UTC())
	event.SetSource(eventSource)
	event.SetType(message.TopicName())

	err = event.SetData(cloudevents.ApplicationJSON, message.Body())
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	for _, s := range subscribers {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := e.client.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error().Err(result).Msgf("failed to send event to %s", s.Endpoint)
			err = errors.Join(err, fmt.Errorf("%s: %w", s.Endpoint, result))
		}
	}

	return err
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
