package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the run logged msg.
func AssertLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()

	require.True(t,
		strings.Contains(result.LogOutput, msg),
		"expected log message %q was not found in logs", msg,
	)
}

// AssertNotLogged checks that the run never logged msg.
func AssertNotLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()

	require.False(t,
		strings.Contains(result.LogOutput, msg),
		"unexpected log message %q found in logs", msg,
	)
}
