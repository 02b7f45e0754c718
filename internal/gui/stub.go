//go:build !raylib

package gui

// Run reports ErrUnavailable; the desktop editor needs the raylib tag.
func Run(Options) error {
	return ErrUnavailable
}
