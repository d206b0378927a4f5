package temperature

import "strconv"

// absoluteZeroOffset is the Celsius/Kelvin offset.
const absoluteZeroOffset float32 = 273.15

// Reading is a temperature value on a given scale. No physical range check
// is applied; values below absolute zero are carried through unchanged.
type Reading struct {
	Scale Scale   `json:"scale"`
	Value float32 `json:"value"`
}

// String renders "<Scale>: <value>".
func (r Reading) String() string {
	return r.Scale.String() + ": " + FormatValue(r.Value)
}

// Conversion is the three-scale view of one reading. Original is always the
// parsed input; the derived pair follows a fixed order per input scale:
//
//	Kelvin     -> Celsius, Fahrenheit
//	Celsius    -> Kelvin, Fahrenheit
//	Fahrenheit -> Kelvin, Celsius
type Conversion struct {
	Original Reading `json:"original"`
	DerivedA Reading `json:"derived_a"`
	DerivedB Reading `json:"derived_b"`
}

// Readings returns the triple in display order.
func (c Conversion) Readings() []Reading {
	return []Reading{c.Original, c.DerivedA, c.DerivedB}
}

// Convert expresses r in all three scales.
func Convert(r Reading) Conversion {
	out := Conversion{Original: r}
	switch r.Scale {
	case Kelvin:
		out.DerivedA = Reading{Scale: Celsius, Value: ToCelsius(r)}
		out.DerivedB = Reading{Scale: Fahrenheit, Value: ToFahrenheit(r)}
	case Celsius:
		out.DerivedA = Reading{Scale: Kelvin, Value: ToKelvin(r)}
		out.DerivedB = Reading{Scale: Fahrenheit, Value: ToFahrenheit(r)}
	case Fahrenheit:
		out.DerivedA = Reading{Scale: Kelvin, Value: ToKelvin(r)}
		out.DerivedB = Reading{Scale: Celsius, Value: ToCelsius(r)}
	}
	return out
}

// The formulas below are kept in their written order (not simplified) so
// float32 rounding matches recorded results.

// ToCelsius returns r expressed in Celsius.
func ToCelsius(r Reading) float32 {
	switch r.Scale {
	case Kelvin:
		return r.Value - absoluteZeroOffset
	case Fahrenheit:
		return (r.Value - 32) * 5 / 9
	default:
		return r.Value
	}
}

// ToFahrenheit returns r expressed in Fahrenheit.
func ToFahrenheit(r Reading) float32 {
	switch r.Scale {
	case Kelvin:
		return (r.Value-absoluteZeroOffset)*9/5 + 32
	case Celsius:
		return r.Value*9/5 + 32
	default:
		return r.Value
	}
}

// ToKelvin returns r expressed in Kelvin.
func ToKelvin(r Reading) float32 {
	switch r.Scale {
	case Fahrenheit:
		return (r.Value-32)*5/9 + absoluteZeroOffset
	case Celsius:
		return r.Value + absoluteZeroOffset
	default:
		return r.Value
	}
}

// FormatValue renders v with the shortest float32 representation, e.g.
// 283.15 or 50.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
