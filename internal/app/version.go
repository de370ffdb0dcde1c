package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set through -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request version information. It is
// checked before flag parsing so that -version works with an invalid
// configuration.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes build information.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fingerprints %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
