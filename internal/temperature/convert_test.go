package temperature

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

type expected struct {
	scale Scale
	value float64
}

func assertConversion(t *testing.T, got Conversion, want [3]expected) {
	t.Helper()
	for i, r := range got.Readings() {
		assert.Equal(t, want[i].scale, r.Scale, "position %d scale", i)
		assert.InDelta(t, want[i].value, float64(r.Value), tolerance, "position %d value", i)
	}
}

func TestConvert_Scenarios(t *testing.T) {
	tests := []struct {
		input string
		want  [3]expected
	}{
		{"10C", [3]expected{{Celsius, 10}, {Kelvin, 283.15}, {Fahrenheit, 50}}},
		{"10F", [3]expected{{Fahrenheit, 10}, {Kelvin, 260.9278}, {Celsius, -12.22222}}},
		{"10K", [3]expected{{Kelvin, 10}, {Celsius, -263.15}, {Fahrenheit, -441.67}}},
		{"1234C", [3]expected{{Celsius, 1234}, {Kelvin, 1507.15}, {Fahrenheit, 2253.2}}},
		{"-1234F", [3]expected{{Fahrenheit, -1234}, {Kelvin, -430.1833}, {Celsius, -703.3333}}},
		{"0C", [3]expected{{Celsius, 0}, {Kelvin, 273.15}, {Fahrenheit, 32}}},
		{"0F", [3]expected{{Fahrenheit, 0}, {Kelvin, 255.37222}, {Celsius, -17.777779}}},
		{"0K", [3]expected{{Kelvin, 0}, {Celsius, -273.15}, {Fahrenheit, -459.67}}},
		{"-40C", [3]expected{{Celsius, -40}, {Kelvin, 233.15}, {Fahrenheit, -40}}},
		{"98.6F", [3]expected{{Fahrenheit, 98.6}, {Kelvin, 310.15}, {Celsius, 37}}},
		{"-10K", [3]expected{{Kelvin, -10}, {Celsius, -283.15}, {Fahrenheit, -477.67}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Parse(tt.input)
			require.NoError(t, err)
			assertConversion(t, Convert(r), tt.want)
		})
	}
}

func TestConvert_OriginalIsPreserved(t *testing.T) {
	for _, s := range []Scale{Celsius, Fahrenheit, Kelvin} {
		for _, v := range []float32{-1234, -0.5, 0, 1, 36.6, 1e5} {
			r := Reading{Scale: s, Value: v}
			assert.Equal(t, r, Convert(r).Original)
		}
	}
}

func TestConvert_DerivedOrdering(t *testing.T) {
	tests := []struct {
		in   Scale
		a, b Scale
	}{
		{Kelvin, Celsius, Fahrenheit},
		{Celsius, Kelvin, Fahrenheit},
		{Fahrenheit, Kelvin, Celsius},
	}
	for _, tt := range tests {
		c := Convert(Reading{Scale: tt.in, Value: 1})
		assert.Equal(t, tt.a, c.DerivedA.Scale, tt.in.String())
		assert.Equal(t, tt.b, c.DerivedB.Scale, tt.in.String())
	}
}

func TestConvert_KelvinRoundTrip(t *testing.T) {
	for v := float32(-500); v <= 1000; v += 0.25 {
		k := Convert(Reading{Scale: Celsius, Value: v}).DerivedA
		require.Equal(t, Kelvin, k.Scale)
		back := Convert(k).DerivedA
		require.Equal(t, Celsius, back.Scale)
		assert.InDelta(t, float64(v), float64(back.Value), tolerance)
	}
}

func TestConvert_BelowAbsoluteZeroAccepted(t *testing.T) {
	c := Convert(Reading{Scale: Kelvin, Value: -10})
	assert.Less(t, c.DerivedA.Value, float32(-273.15))
}

func TestToHelpers_SameScaleIsIdentity(t *testing.T) {
	assert.Equal(t, float32(12.5), ToCelsius(Reading{Celsius, 12.5}))
	assert.Equal(t, float32(12.5), ToFahrenheit(Reading{Fahrenheit, 12.5}))
	assert.Equal(t, float32(12.5), ToKelvin(Reading{Kelvin, 12.5}))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "10", FormatValue(10))
	assert.Equal(t, "283.15", FormatValue(283.15))
	assert.Equal(t, "-12.222222", FormatValue(ToCelsius(Reading{Fahrenheit, 10})))
	assert.Equal(t, "2253.2", FormatValue(ToFahrenheit(Reading{Celsius, 1234})))
}

func TestReading_String(t *testing.T) {
	assert.Equal(t, "Kelvin: 283.15", Reading{Kelvin, 283.15}.String())
	assert.Equal(t, "Celsius: -263.15", Reading{Celsius, -263.15}.String())
}

func TestScale_Names(t *testing.T) {
	assert.Equal(t, "Celsius", Celsius.String())
	assert.Equal(t, "F", Fahrenheit.Symbol())
	b, err := Kelvin.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Kelvin", string(b))
}

func TestParseAndConvert_ConcurrentCallers(t *testing.T) {
	inputs := []string{"10C", "98.6f", "0K", "-40F", "10 k", "10t"}

	want := make([]Conversion, len(inputs))
	wantErr := make([]error, len(inputs))
	for i, in := range inputs {
		want[i], wantErr[i] = ParseAndConvert(in)
	}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				i := n % len(inputs)
				got, err := ParseAndConvert(inputs[i])
				assert.Equal(t, want[i], got)
				assert.Equal(t, wantErr[i], err)
			}
		}()
	}
	wg.Wait()
}
