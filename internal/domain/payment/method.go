package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownMethod   = errors.New("payment: unknown method")
	ErrMalformedChoice = errors.New("payment: choice must be a number")
)

// Method enumerates the selectable payment methods in menu order.
type Method int

const (
	MethodCash Method = iota + 1
	MethodCard
	MethodGCash
)

// Methods returns the selectable methods in menu order.
func Methods() []Method {
	return []Method{MethodCash, MethodCard, MethodGCash}
}

// Label is the short menu label.
func (m Method) Label() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodCard:
		return "Card"
	case MethodGCash:
		return "GCash"
	default:
		return "Unknown"
	}
}

// ParseMethod parses a menu choice. The whole trimmed input must be a number
// in range; "2abc" and "1 1" are rejected.
func ParseMethod(input string) (Method, error) {
	input = strings.Trim(input, " \t\r")
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedChoice, input)
	}
	m := Method(n)
	if m < MethodCash || m > MethodGCash {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMethod, n)
	}
	return m, nil
}

// NewStrategy builds the strategy for m.
func NewStrategy(m Method) (Strategy, error) {
	switch m {
	case MethodCash:
		return Cash{}, nil
	case MethodCard:
		return Card{}, nil
	case MethodGCash:
		return GCash{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
}
