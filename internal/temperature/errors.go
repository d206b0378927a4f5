package temperature

import (
	"errors"
	"fmt"
)

// Kind classifies why an input could not be parsed.
type Kind int

const (
	KindEmptyInput Kind = iota + 1
	KindContainsSpace
	KindInvalidNumber
	KindUnknownScale
)

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindContainsSpace:
		return "contains_space"
	case KindInvalidNumber:
		return "invalid_number"
	case KindUnknownScale:
		return "unknown_scale"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a *ParseError.
var (
	ErrEmptyInput    = errors.New("empty input")
	ErrContainsSpace = errors.New("invalid entry: contains space")
	ErrInvalidNumber = errors.New("invalid number")
	ErrUnknownScale  = errors.New("unknown scale")
)

// ParseError is returned by Parse. Text holds the offending numeric part for
// KindInvalidNumber and ScaleRune the offending character for KindUnknownScale.
type ParseError struct {
	Kind      Kind
	Text      string
	ScaleRune rune
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindEmptyInput:
		return ErrEmptyInput.Error()
	case KindContainsSpace:
		return ErrContainsSpace.Error()
	case KindInvalidNumber:
		return fmt.Sprintf("invalid number %s", e.Text)
	case KindUnknownScale:
		return fmt.Sprintf("unknown scale %c", e.ScaleRune)
	default:
		return "invalid temperature"
	}
}

// Is lets callers branch on the kind with errors.Is.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrEmptyInput:
		return e.Kind == KindEmptyInput
	case ErrContainsSpace:
		return e.Kind == KindContainsSpace
	case ErrInvalidNumber:
		return e.Kind == KindInvalidNumber
	case ErrUnknownScale:
		return e.Kind == KindUnknownScale
	}
	return false
}
