package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/tracing"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

// ErrTransientNetwork is returned when a call did not complete or the service
// did not answer with a success status. The next poll is expected to recover.
var ErrTransientNetwork = errors.New("transient network error")

var tracer = otel.Tracer("smartbox-telemetry-client")

//go:generate moq -rm -out client_mock.go . SmartBoxClient
type SmartBoxClient interface {
	GetRecent(ctx context.Context, boxID string, limit int) ([]types.Reading, error)
	GetDashboard(ctx context.Context) (types.Dashboard, error)
}

type smartBoxClient struct {
	url        string
	httpClient http.Client
}

func NewSmartBoxClient(serviceURL string, timeout time.Duration) SmartBoxClient {
	return &smartBoxClient{
		url: strings.TrimSuffix(serviceURL, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

// GetRecent treats an unknown box as a box without readings.
func (c *smartBoxClient) GetRecent(ctx context.Context, boxID string, limit int) ([]types.Reading, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-recent-readings")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	u := fmt.Sprintf("%s/api/v1/data/%s", c.url, url.PathEscape(boxID))
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}

	readings := []types.Reading{}

	status, err := c.get(ctx, u, &readings)
	if status == http.StatusNotFound {
		err = nil
		return []types.Reading{}, nil
	}
	if err != nil {
		return nil, err
	}

	return readings, nil
}

func (c *smartBoxClient) GetDashboard(ctx context.Context) (types.Dashboard, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-dashboard")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	dashboard := types.Dashboard{}

	_, err = c.get(ctx, c.url+"/api/v1/dashboard", &dashboard)
	if err != nil {
		return types.Dashboard{}, err
	}

	return dashboard, nil
}

func (c *smartBoxClient) get(ctx context.Context, u string, result any) (int, error) {
	log := logging.GetFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", u).Msg("request failed")
		return 0, fmt.Errorf("%w: %w", ErrTransientNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("%w: request failed with status code %d", ErrTransientNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to read response body: %w", ErrTransientNetwork, err)
	}

	err = json.Unmarshal(body, result)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return resp.StatusCode, nil
}
