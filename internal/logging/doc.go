// Package logging provides structured logging for the nvsetup CLI using slog.
//
// Operator-facing progress goes through internal/console; this package carries
// the diagnostic stream: detection results, every external command line, and
// at trace level the command output.
//
// # Levels
//
// The -v flag is counted: no flag logs warnings, -v info, -vv debug and
// -vvv [LevelTrace]. NVSETUP_DEBUG=1 selects debug and NVSETUP_DEBUG=2 trace
// when no flag is given.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
