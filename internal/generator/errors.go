package generator

import (
	"errors"
	"fmt"

	"github.com/samdwyer/delve/internal/world"
)

var (
	// ErrConfiguration marks parameters no amount of retrying can satisfy.
	ErrConfiguration = errors.New("invalid level configuration")
	// ErrExhausted marks a generation whose attempt budget ran out.
	ErrExhausted = errors.New("generation attempts exhausted")
)

// GenerationError reports which level failed and at what stage.
type GenerationError struct {
	Level string
	Kind  world.Kind
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s level %q: %s: %v", e.Kind, e.Level, e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func configError(spec Spec, kind world.Kind, err error) error {
	return &GenerationError{Level: spec.Name, Kind: kind, Stage: "configuration", Err: fmt.Errorf("%w: %v", ErrConfiguration, err)}
}

// attemptFailed reports a failed attempt that the retry loop may repeat.
func attemptFailed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExhausted, fmt.Sprintf(format, args...))
}
