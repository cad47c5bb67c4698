// SPDX-License-Identifier: MIT
//
// Package build provides functionality to manage and retrieve build
// information for the service. It allows embedding metadata such as the
// application name, build timestamp, Git commit hash, and semantic version
// into the binary at compile time using linker flags. This information is
// reported by the version command and the health endpoint.
package build

type ldFlags struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

// Package-level variables for build information. These are populated by
// -ldflags during compilation. Development defaults are used when a flag is
// not set, so plain `go run` works without a release build.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = &ldFlags{
		Name:        "spectrum-api",
		Description: "Perform signal spectrum analysis",
		Time:        "unknown",
		Commit:      "unknown",
		Version:     "dev",
	}
)

// Initialize copies build information from ldflags variables into the
// buildFlags struct. This must be called early in program startup so the
// rest of the program sees consistent build information.
func Initialize() {
	if buildName != "" {
		buildFlags.Name = buildName
	}
	if buildTime != "" {
		buildFlags.Time = buildTime
	}
	if buildCommit != "" {
		buildFlags.Commit = buildCommit
	}
	if buildVersion != "" {
		buildFlags.Version = buildVersion
	}
}

// GetBuildFlags returns the current build information. Initialize() should
// be called before this function so release metadata is reflected.
func GetBuildFlags() *ldFlags {
	return buildFlags
}
