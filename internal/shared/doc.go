// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a buffered slog handler and log
// assertions for tests:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    // run code with logger
//	    testutil.AssertLogContains(t, handler, slog.LevelInfo, "Export complete")
//	}
package shared
