// Package ui provides theme and color support for terminal output.
// It defines ANSI color schemes for plain messages and lipgloss palettes for
// styled tables, and honours NO_COLOR.
package ui
