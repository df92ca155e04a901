package cli

import "errors"

// Exit codes for md2html.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates any error: bad usage, unreadable input, failed
	// conversions or differing comparison output.
	ExitFailure = 1
)

// Errors that have already been reported to the user when returned.
var (
	// ErrUsage is returned after usage has been printed for bad arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrOpenFailed is returned after "failed to open" has been printed.
	ErrOpenFailed = errors.New("failed to open")

	// ErrBuildFailed is returned when at least one file failed to convert.
	ErrBuildFailed = errors.New("build failed")

	// ErrOutputsDiffer is returned by compare when the renderers disagree.
	ErrOutputsDiffer = errors.New("outputs differ")
)

// IsReported reports whether err has already been shown to the user, so the
// caller only needs to set the exit code.
func IsReported(err error) bool {
	return errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrOpenFailed) ||
		errors.Is(err, ErrBuildFailed) ||
		errors.Is(err, ErrOutputsDiffer)
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
