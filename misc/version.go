// Package misc keeps build time information about the program.
package misc

// These are set at build time with -ldflags "-X stylestats/misc.version=..."
var (
	appName = "stylestats"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
