package app

import "fmt"

// Set with -ldflags "-X github.com/heartmarshall/taskscope-backend/internal/app.Version=v1.2.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion reports the build for startup logs and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
