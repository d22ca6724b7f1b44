//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package log

func isTerminal(fd uintptr) bool {
	return false
}
