package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/diwise/smartbox-telemetry/pkg/types"
)

func TestHealth(t *testing.T) {
	is, app := setupTest(t)
	defer app.Close()

	control := httptest.NewServer(app.control)
	defer control.Close()

	resp, _ := testRequest(is, control, http.MethodGet, "/health", "")
	is.Equal(resp.StatusCode, http.StatusNoContent)

	resp, body := testRequest(is, control, http.MethodGet, "/metrics", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "smartbox_"))
}

func TestHealthReportsFailingDependency(t *testing.T) {
	is := is.New(t)

	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	w := httptest.NewRecorder()
	newHealthHandler(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	is.Equal(w.Code, http.StatusNoContent)

	w = httptest.NewRecorder()
	newHealthHandler(ok, down).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	is.Equal(w.Code, http.StatusServiceUnavailable)
}

func TestSeededBoxesAreListed(t *testing.T) {
	is, app := setupTest(t)
	defer app.Close()

	server := httptest.NewServer(app.api)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v1/boxes", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	boxes := []types.BoxSummary{}
	is.NoErr(json.Unmarshal([]byte(body), &boxes))
	is.Equal(len(boxes), 2)
	is.Equal(boxes[0].ID, "SMARTBOX-001")
	is.Equal(boxes[0].Location, "Jakarta Distribution Center")
	is.Equal(boxes[1].Status, types.BoxStatusInactive)
}

func TestReadingsFromOneBox(t *testing.T) {
	is, app := setupTest(t)
	defer app.Close()

	server := httptest.NewServer(app.api)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/v1/boxes/SMARTBOX-001/readings", `{"temperature":2.0,"humidity":50}`)
	is.Equal(resp.StatusCode, http.StatusCreated)

	safe := types.IngestResult{}
	is.NoErr(json.Unmarshal([]byte(body), &safe))
	is.Equal(safe.Verdict, types.VerdictSafe)
	is.True(safe.Alert == nil)

	resp, body = testRequest(is, server, http.MethodPost, "/api/v1/boxes/SMARTBOX-001/readings", `{"temperature":6.0,"humidity":50,"latitude":-6.2088,"longitude":106.8456}`)
	is.Equal(resp.StatusCode, http.StatusCreated)

	unsafe := types.IngestResult{}
	is.NoErr(json.Unmarshal([]byte(body), &unsafe))
	is.Equal(unsafe.Verdict, types.VerdictUnsafe)
	is.True(unsafe.Alert != nil)
	is.Equal(unsafe.Alert.Reading.ID, unsafe.ID)

	resp, body = testRequest(is, server, http.MethodGet, "/api/v1/data/SMARTBOX-001?limit=6", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	readings := []types.Reading{}
	is.NoErr(json.Unmarshal([]byte(body), &readings))
	is.Equal(len(readings), 2)
	is.Equal(readings[0].ID, unsafe.ID)
	is.Equal(readings[0].Verdict, types.VerdictUnsafe)
	is.Equal(readings[0].Location.Latitude, -6.2088)
	is.Equal(readings[1].Verdict, types.VerdictSafe)

	resp, body = testRequest(is, server, http.MethodGet, "/api/v1/alerts?boxId=SMARTBOX-001&state=open", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	open := []types.Alert{}
	is.NoErr(json.Unmarshal([]byte(body), &open))
	is.Equal(len(open), 1)
	is.Equal(open[0].ID, unsafe.Alert.ID)

	resp, body = testRequest(is, server, http.MethodGet, "/api/v1/dashboard", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	dashboard := types.Dashboard{}
	is.NoErr(json.Unmarshal([]byte(body), &dashboard))
	is.Equal(dashboard.MealsProvided, int64(12847))
	is.Equal(dashboard.OpenAlerts, int64(1))
}

func TestUnknownBoxHasNoReadings(t *testing.T) {
	is, app := setupTest(t)
	defer app.Close()

	server := httptest.NewServer(app.api)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v1/data/SMARTBOX-404", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, "[]")
}

func TestParseConfig(t *testing.T) {
	is := is.New(t)

	cfg, err := parseConfig(strings.NewReader(configYaml))
	is.NoErr(err)
	is.Equal(cfg.Thresholds.MaxTemperature, 8.0)
	is.Equal(cfg.Retention.Capacity, 50)
	is.Equal(cfg.Retention.ClockSkew, 10*time.Second)
	is.Equal(cfg.Ledger.Volunteers, int64(300))
	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].Subscribers[0].Endpoint, "http://localhost:8081/events")
}

func TestMissingConfigFileGivesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := loadConfigFile("/nosuchdir/config.yaml")
	is.NoErr(err)
	is.True(cfg.Thresholds.IsZero())
}

func setupTest(t *testing.T) (*is.I, *application) {
	is := is.New(t)

	app, err := initialize(context.Background(), defaultFlags(), &appConfig{}, strings.NewReader(boxesCsv))
	is.NoErr(err)

	return is, app
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body string) (*http.Response, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, ts.URL+path, reader)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

const boxesCsv string = `id;location;status
SMARTBOX-001;Jakarta Distribution Center;active
SMARTBOX-002;Bandung Community Kitchen;inactive`

const configYaml string = `
thresholds:
  minTemperature: 0
  maxTemperature: 8
  minHumidity: 30
  maxHumidity: 70
retention:
  capacity: 50
  clockSkew: 10s
ledger:
  mealsProvided: 13000
  co2Saved: 900
  peopleHelped: 5500
  volunteers: 300
notifications:
  - id: alert-created
    name: Alert created
    type: alerts.alertCreated
    subscribers:
      - endpoint: http://localhost:8081/events
`
