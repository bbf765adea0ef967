package testutil

import "errors"

// ErrInjected is returned by fakes that stand in for a failing store or
// client.
var ErrInjected = errors.New("injected failure")
