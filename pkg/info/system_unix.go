//go:build linux || darwin || freebsd || netbsd || openbsd

package info

import "golang.org/x/sys/unix"

// uname returns the kernel release and machine hardware name.
func uname() (release, machine string) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", ""
	}
	return unix.ByteSliceToString(u.Release[:]), unix.ByteSliceToString(u.Machine[:])
}
