package platform

import (
	"errors"
	"fmt"
	"os"
)

// Environment variable names consulted by DetectHost.
const (
	// EnvOS is the variable holding the operating system name.
	EnvOS = "OS"
	// EnvArchitecture is the variable holding the native processor architecture.
	EnvArchitecture = "PROCESSOR_ARCHITECTURE"
	// EnvWOW64Architecture is the variable holding the host architecture
	// seen by 32-bit processes on 64-bit Windows.
	EnvWOW64Architecture = "PROCESSOR_ARCHITEW6432"
)

const (
	// windowsNT is the OS value required by the gate.
	windowsNT = "Windows_NT"
	// arm64 is the architecture value rejected by the gate.
	arm64 = "ARM64"
)

// ErrUnsupported indicates the host platform is not eligible for packaging.
var ErrUnsupported = errors.New("unsupported packaging platform")

// Host describes the environment triple the packaging gate evaluates.
// Values are raw environment strings; empty means the variable was unset.
type Host struct {
	// OS is the operating system name (e.g. "Windows_NT").
	OS string
	// Architecture is the native processor architecture (e.g. "AMD64").
	Architecture string
	// WOW64Architecture is the 64-bit host architecture reported to
	// 32-bit processes, empty on native processes and non-Windows hosts.
	WOW64Architecture string
}

// DetectHost reads the gate triple from the process environment.
func DetectHost() Host {
	return Host{
		OS:                os.Getenv(EnvOS),
		Architecture:      os.Getenv(EnvArchitecture),
		WOW64Architecture: os.Getenv(EnvWOW64Architecture),
	}
}

// Supported reports whether packaging may run on the host:
// Windows with neither architecture value indicating ARM64.
// An empty architecture value is not treated as ARM64.
func Supported(h Host) bool {
	return h.OS == windowsNT && h.Architecture != arm64 && h.WOW64Architecture != arm64
}

// Check returns nil for a supported host and otherwise an error
// that echoes the three raw environment values for diagnosis.
func Check(h Host) error {
	if Supported(h) {
		return nil
	}

	return fmt.Errorf("%w: %s %s %s", ErrUnsupported, h.OS, h.Architecture, h.WOW64Architecture)
}
