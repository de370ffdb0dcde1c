// Package format holds pure string helpers shared by the CLI and the
// artifact writers.
package format

import "strings"

// validFilenameChars is the whitelist applied by Filename.
const validFilenameChars = "-_.() abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Filename turns a display name into a filesystem-safe file name: every
// character outside the whitelist is removed, then spaces become
// underscores. Applying it twice gives the same result as applying it once.
//
// The result may still be unusable on its own ("", "." or ".."); callers
// always add a prefix or an extension.
func Filename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.IndexByte(validFilenameChars, byte(r)) >= 0 {
			if r == ' ' {
				r = '_'
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
