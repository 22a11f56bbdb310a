package testutil

import "errors"

// ErrSimulated is returned by fake repositories to drive the failure paths
// of loaders and managers.
var ErrSimulated = errors.New("simulated repository failure")
