package temperature

// Scale is one of the three supported temperature scales.
type Scale int

const (
	Celsius Scale = iota
	Fahrenheit
	Kelvin
)

// String returns the scale name used in reports and error messages.
func (s Scale) String() string {
	switch s {
	case Celsius:
		return "Celsius"
	case Fahrenheit:
		return "Fahrenheit"
	case Kelvin:
		return "Kelvin"
	default:
		return "Unknown"
	}
}

// Symbol returns the single-letter suffix accepted by Parse.
func (s Scale) Symbol() string {
	switch s {
	case Celsius:
		return "C"
	case Fahrenheit:
		return "F"
	case Kelvin:
		return "K"
	default:
		return "?"
	}
}

// MarshalText renders the scale by name so JSON payloads read naturally.
func (s Scale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// scaleFromRune maps a trailing scale letter, case-insensitively.
func scaleFromRune(r rune) (Scale, bool) {
	switch r {
	case 'c', 'C':
		return Celsius, true
	case 'f', 'F':
		return Fahrenheit, true
	case 'k', 'K':
		return Kelvin, true
	default:
		return 0, false
	}
}
