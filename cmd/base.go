// Package cmd is the command line of the compute budget toolkit.
package cmd

var (
	// Version is the app's semantic version. Designed to be overwritten by make.
	Version string

	// Commit is the git commit used to build the app. Designed to be overwritten by make.
	Commit string
)

// versionString returns the version with the commit appended when it is known.
func versionString() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" {
		v += "+" + Commit
	}
	return v
}
