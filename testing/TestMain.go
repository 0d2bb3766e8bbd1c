// Package testing switches the process into test mode. Test packages that
// build the app or its handlers import it for side effects.
package testing

import "os"

func init() {
	_ = os.Setenv("SHOWCASE_TEST_MODE", "1")
	if os.Getenv("CSRF_SECRET") == "" {
		_ = os.Setenv("CSRF_SECRET", "test-secret")
	}
}
