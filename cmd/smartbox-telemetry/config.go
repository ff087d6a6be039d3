package main

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/diwise/smartbox-telemetry/internal/pkg/application/classifier"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/events"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/watchdog"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

type retentionConfig struct {
	Capacity  int           `yaml:"capacity"`
	ClockSkew time.Duration `yaml:"clockSkew"`
}

type appConfig struct {
	Thresholds    classifier.Thresholds `yaml:"thresholds"`
	Retention     retentionConfig       `yaml:"retention"`
	Ledger        types.DashboardStats  `yaml:"ledger"`
	Notifications []events.Notification `yaml:"notifications"`
	Watchdog      watchdog.Config       `yaml:"watchdog"`
}

// loadConfigFile returns the built-in defaults when the file does not exist.
func loadConfigFile(path string) (*appConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &appConfig{}, nil
		}
		return nil, err
	}
	defer f.Close()

	return parseConfig(f)
}

func parseConfig(r io.Reader) (*appConfig, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := &appConfig{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
