// Package classifier decides whether a single box reading is safe for the
// perishable food carried by the box.
package classifier

import (
	"math"

	"github.com/diwise/smartbox-telemetry/pkg/types"
)

type Verdict string

const (
	Safe    Verdict = types.VerdictSafe
	Unsafe  Verdict = types.VerdictUnsafe
	Unknown Verdict = types.VerdictUnknown
)

type Violation string

const (
	TemperatureHigh Violation = "temperature-high"
	TemperatureLow  Violation = "temperature-low"
	HumidityHigh    Violation = "humidity-high"
	HumidityLow     Violation = "humidity-low"
)

// Thresholds are inclusive bounds, in °C and % relative humidity.
type Thresholds struct {
	MinTemperature float64 `yaml:"minTemperature"`
	MaxTemperature float64 `yaml:"maxTemperature"`
	MinHumidity    float64 `yaml:"minHumidity"`
	MaxHumidity    float64 `yaml:"maxHumidity"`
}

var DefaultThresholds = Thresholds{
	MinTemperature: 1.0,
	MaxTemperature: 4.0,
	MinHumidity:    40.0,
	MaxHumidity:    60.0,
}

type Result struct {
	Verdict    Verdict
	Violations []Violation
}

func (r Result) Strings() []string {
	s := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		s = append(s, string(v))
	}
	return s
}

// Classify uses DefaultThresholds.
func Classify(temperature, humidity *float64) Result {
	return DefaultThresholds.Classify(temperature, humidity)
}

// Classify returns Unknown when either value is missing or not a finite number,
// Safe when both values are within bounds and Unsafe otherwise.
func (t Thresholds) Classify(temperature, humidity *float64) Result {
	if !known(temperature) || !known(humidity) {
		return Result{Verdict: Unknown}
	}

	var violations []Violation

	if *temperature > t.MaxTemperature {
		violations = append(violations, TemperatureHigh)
	} else if *temperature < t.MinTemperature {
		violations = append(violations, TemperatureLow)
	}

	if *humidity > t.MaxHumidity {
		violations = append(violations, HumidityHigh)
	} else if *humidity < t.MinHumidity {
		violations = append(violations, HumidityLow)
	}

	if len(violations) > 0 {
		return Result{Verdict: Unsafe, Violations: violations}
	}

	return Result{Verdict: Safe}
}

// IsZero reports whether no bounds have been configured.
func (t Thresholds) IsZero() bool {
	return t == Thresholds{}
}

func known(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
