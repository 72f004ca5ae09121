package render

import (
	"errors"
	"fmt"
)

var (
	ErrSessionOpen    = errors.New("render session already open")
	ErrSessionClosed  = errors.New("render session not open")
	ErrUnknownKind    = errors.New("unknown kind")
	ErrErrorTypeArgs  = errors.New("error type without parent carries type arguments")
	ErrMissingPayload = errors.New("symbol payload missing")
)

func fatalf(sentinel error, format string, args ...any) {
	panic(fmt.Errorf("render: %s: %w", fmt.Sprintf(format, args...), sentinel))
}

// IsFatal reports whether err carries one of the fatal render conditions.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSessionOpen) ||
		errors.Is(err, ErrSessionClosed) ||
		errors.Is(err, ErrUnknownKind) ||
		errors.Is(err, ErrErrorTypeArgs) ||
		errors.Is(err, ErrMissingPayload)
}
