package session

import (
	"errors"
	"fmt"
)

// ConfigError means the session input itself is unusable: an empty plan, a
// non-positive work duration, a missing instruction. Returned synchronously
// from Start and from plan loading; the session never begins on one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// ErrDispatchUnavailable is returned by voice/music implementations whose
// provider is down or not linked. The runtime absorbs it and keeps timing;
// a session never stalls on audio.
var ErrDispatchUnavailable = errors.New("dispatch unavailable")
