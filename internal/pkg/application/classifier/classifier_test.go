package classifier

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestThatValuesWithinBoundsAreSafe(t *testing.T) {
	is := is.New(t)

	for temp := 1.0; temp <= 4.0; temp += 0.25 {
		for hum := 40.0; hum <= 60.0; hum += 2.5 {
			r := Classify(f(temp), f(hum))
			is.Equal(r.Verdict, Safe)
			is.Equal(len(r.Violations), 0)
		}
	}
}

func TestThatBoundsAreInclusive(t *testing.T) {
	is := is.New(t)

	is.Equal(Classify(f(1.0), f(40.0)).Verdict, Safe)
	is.Equal(Classify(f(4.0), f(60.0)).Verdict, Safe)
}

func TestThatTemperatureJustOutsideBoundsIsUnsafe(t *testing.T) {
	is := is.New(t)

	low := Classify(f(0.99), f(50))
	is.Equal(low.Verdict, Unsafe)
	is.Equal(low.Violations, []Violation{TemperatureLow})

	high := Classify(f(4.01), f(50))
	is.Equal(high.Verdict, Unsafe)
	is.Equal(high.Violations, []Violation{TemperatureHigh})
}

func TestThatCombinedViolationsAreReported(t *testing.T) {
	is := is.New(t)

	r := Classify(f(6.0), f(80.0))
	is.Equal(r.Verdict, Unsafe)
	is.Equal(r.Strings(), []string{"temperature-high", "humidity-high"})

	r = Classify(f(-2.0), f(10.0))
	is.Equal(r.Strings(), []string{"temperature-low", "humidity-low"})
}

func TestThatMissingTemperatureIsUnknown(t *testing.T) {
	is := is.New(t)

	is.Equal(Classify(nil, f(50)).Verdict, Unknown)
	is.Equal(Classify(nil, f(99)).Verdict, Unknown)
	is.Equal(Classify(nil, nil).Verdict, Unknown)
	is.Equal(Classify(f(2.0), nil).Verdict, Unknown)
}

func TestThatNonFiniteValuesAreUnknown(t *testing.T) {
	is := is.New(t)

	is.Equal(Classify(f(math.NaN()), f(50)).Verdict, Unknown)
	is.Equal(Classify(f(2.0), f(math.Inf(1))).Verdict, Unknown)
}

func TestCustomThresholds(t *testing.T) {
	is := is.New(t)

	frozen := Thresholds{MinTemperature: -25, MaxTemperature: -15, MinHumidity: 0, MaxHumidity: 100}

	is.Equal(frozen.Classify(f(-18), f(30)).Verdict, Safe)
	is.Equal(frozen.Classify(f(2.0), f(50)).Verdict, Unsafe)
	is.True(!frozen.IsZero())
	is.True(Thresholds{}.IsZero())
}

func f(v float64) *float64 {
	return &v
}
