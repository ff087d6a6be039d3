package webevents

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestThatMessagesArePushedToClientsOfTheBox(t *testing.T) {
	is := is.New(t)

	we := New(zerolog.Nop())
	defer we.Shutdown()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		we.Serve(w, r, r.URL.Query().Get("box"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?box=SMARTBOX-001", nil)
	is.NoErr(err)
	defer conn.Close()

	other, _, err := websocket.DefaultDialer.Dial(wsURL+"?box=SMARTBOX-002", nil)
	is.NoErr(err)
	defer other.Close()

	waitFor(func() bool { return we.Clients("SMARTBOX-001") == 1 && we.Clients("SMARTBOX-002") == 1 })

	err = we.PublishOnTopic(context.Background(), &testMessage{topic: "telemetry.readingStored", body: `{"boxId":"SMARTBOX-001","id":7}`})
	is.NoErr(err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := conn.ReadMessage()
	is.NoErr(err)

	e := envelope{}
	is.NoErr(json.Unmarshal(b, &e))
	is.Equal(e.Type, "telemetry.readingStored")
	is.Equal(string(e.Payload), `{"boxId":"SMARTBOX-001","id":7}`)

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = other.ReadMessage()
	is.True(err != nil)
}

func TestThatMessagesWithoutBoxAreIgnored(t *testing.T) {
	is := is.New(t)
	we := New(zerolog.Nop())

	is.NoErr(we.PublishOnTopic(context.Background(), &testMessage{topic: "x", body: `{"id":1}`}))
	is.NoErr(we.PublishOnTopic(context.Background(), &testMessage{topic: "x", body: `not json`}))
}

func waitFor(cond func() bool) {
	deadline := time.Now().Add(2 * time.Second)
	for !cond() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}

type testMessage struct {
	topic string
	body  string
}

func (m *testMessage) TopicName() string   { return m.topic }
func (m *testMessage) ContentType() string { return "application/json" }
func (m *testMessage) Body() []byte        { return []byte(m.body) }
