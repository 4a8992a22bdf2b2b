package info

import (
	"os"
	"runtime"
)

// DetectSystem reads host facts from the operating environment. Fields that
// cannot be resolved are left empty rather than failing.
func DetectSystem() SystemInfo {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = ""
	}

	release, machine := uname()
	if machine == "" {
		machine = runtime.GOARCH
	}

	return SystemInfo{
		Hostname:        hostname,
		Platform:        runtime.GOOS,
		PlatformVersion: release,
		Architecture:    machine,
		CPUCount:        runtime.NumCPU(),
		GoVersion:       runtime.Version(),
	}
}
