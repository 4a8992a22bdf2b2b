//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package info

func uname() (release, machine string) {
	return "", ""
}
