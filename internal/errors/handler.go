package apperrors

import (
	"fmt"
	"io"
)

// ColorProvider supplies the escape sequences used to highlight messages.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleRunError prints a user-facing message for err and returns the exit
// code to use. A nil error prints nothing.
func HandleRunError(err error, out io.Writer, colors ColorProvider) int {
	code := ExitCodeFor(err)
	switch code {
	case ExitSuccess:
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sRun timed out: %v%s\n", colors.Yellow(), err, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sRun canceled.%s\n", colors.Yellow(), colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
