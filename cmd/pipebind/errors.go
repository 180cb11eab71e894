package main

import (
	"errors"
	"fmt"
)

// errFindings makes the process exit with status 1 without printing anything
// beyond the diagnostics already written.
var errFindings = errors.New("diagnostics contain errors")

func errUnknownFlagValue(flag, value, allowed string) error {
	return fmt.Errorf("invalid --%s value %q (expected %s)", flag, value, allowed)
}
