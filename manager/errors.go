package manager

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ProviderError reports a failure talking to an external provider: transport
// errors, timeouts, unexpected status codes or responses missing expected fields.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status code %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
