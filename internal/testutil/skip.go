// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"testing"
)

// SkipIfNoNetwork skips the test if MSGBOARD_TEST_SKIP_NETWORK is set.
// httptest servers bind a loopback port, which some sandboxes forbid.
func SkipIfNoNetwork(t *testing.T) {
	t.Helper()
	if os.Getenv("MSGBOARD_TEST_SKIP_NETWORK") != "" {
		t.Skip("skipping network test: MSGBOARD_TEST_SKIP_NETWORK is set")
	}
}
