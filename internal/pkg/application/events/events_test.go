package events

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestConfig(t *testing.T) {
	is := is.New(t)
	config := strings.NewReader(`
notifications:
  - id: cold-chain
    name: Cold chain alerts
    type: alerts.alertCreated
    subscribers:
    - endpoint: http://api-notification:8990
`)
	cfg, err := LoadConfiguration(config)

	is.NoErr(err)
	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].ID, "cold-chain")
	is.Equal(cfg.Notifications[0].Subscribers[0].Endpoint, "http://api-notification:8990")
}

func TestThatMessagesAreSentToSubscribers(t *testing.T) {
	is := is.New(t)

	var eventType, body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eventType = r.Header.Get("Ce-Type")
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender, err := New(&Config{
		Notifications: []Notification{
			{ID: "test", Type: "alerts.alertCreated", Subscribers: []SubscriberConfig{{Endpoint: server.URL}}},
		},
	})
	is.NoErr(err)

	err = sender.PublishOnTopic(context.Background(), &testMessage{topic: "alerts.alertCreated"})
	is.NoErr(err)
	is.Equal(eventType, "alerts.alertCreated")
	is.Equal(body, `{"boxId":"SMARTBOX-001"}`)
}

func TestThatTopicsWithoutSubscribersAreIgnored(t *testing.T) {
	is := is.New(t)

	sender, err := New(nil)
	is.NoErr(err)

	is.NoErr(sender.PublishOnTopic(context.Background(), &testMessage{topic: "alerts.alertClosed"}))
}

func TestThatUnreachableSubscriberIsReported(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	sender, _ := New(&Config{
		Notifications: []Notification{
			{ID: "test", Type: "alerts.alertCreated", Subscribers: []SubscriberConfig{{Endpoint: url}}},
		},
	})

	err := sender.PublishOnTopic(context.Background(), &testMessage{topic: "alerts.alertCreated"})
	is.True(err != nil)
}

type testMessage struct {
	topic string
}

func (m *testMessage) TopicName() string   { return m.topic }
func (m *testMessage) ContentType() string { return "application/json" }
func (m *testMessage) Body() []byte        { return []byte(`{"boxId":"SMARTBOX-001"}`) }
