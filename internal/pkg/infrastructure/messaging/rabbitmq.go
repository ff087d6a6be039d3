package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Config struct {
	URL          string
	Exchange     string
	ServiceName  string
	DialAttempts int
}

func LoadConfiguration(serviceName, url string) Config {
	return Config{
		URL:          url,
		Exchange:     "smartbox-topic-exchange",
		ServiceName:  serviceName,
		DialAttempts: 3,
	}
}

type rabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	appID    string
	log      zerolog.Logger
}

type RabbitPublisher interface {
	Publisher
	Close()
}

// NewRabbitPublisher dials the broker and declares a durable topic exchange.
// Messages are published with the topic name as routing key.
func NewRabbitPublisher(ctx context.Context, cfg Config, log zerolog.Logger) (RabbitPublisher, error) {
	var conn *amqp.Connection
	var err error

	attempts := cfg.DialAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for i := 1; i <= attempts; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i).Msg("failed to connect to rabbitmq")
		time.Sleep(time.Duration(i) * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to connect to message broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &rabbitPublisher{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		appID:    cfg.ServiceName,
		log:      log,
	}, nil
}

func (r *rabbitPublisher) PublishOnTopic(ctx context.Context, message TopicMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.channel.PublishWithContext(ctx, r.exchange, message.TopicName(), false, false, amqp.Publishing{
		AppId:       r.appID,
		MessageId:   uuid.NewString(),
		ContentType: message.ContentType(),
		Timestamp:   time.Now().UTC(),
		Body:        message.Body(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", message.TopicName(), err)
	}

	return nil
}

func (r *rabbitPublisher) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.channel.Close(); err != nil {
		r.log.Warn().Err(err).Msg("failed to close channel")
	}
	if err := r.conn.Close(); err != nil {
		r.log.Warn().Err(err).Msg("failed to close connection")
	}
}
