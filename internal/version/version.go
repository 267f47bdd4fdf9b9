// Package version provides version information for the binary.
package version

import "fmt"

// Version is the current version of the application, set at build time
// using -ldflags.
var Version = "dev"

// BuildTime is when the binary was built, set at build time using -ldflags.
var BuildTime = "unknown"

// String returns the formatted version information.
func String() string {
	return fmt.Sprintf("sahayak version %s (built %s)", Version, BuildTime)
}
