// Package version reports how the marginreq binary and the margin SDK were built.
//
// The variables are stamped by the release build, for example:
//
//	go build -ldflags "-X frizo/margin_sdk/internal/version.Version=v0.3.0 \
//	  -X frizo/margin_sdk/internal/version.GitCommit=$(git rev-parse HEAD)" ./cmd/marginreq
//
// Unstamped builds report "dev".
package version

import (
	"fmt"
	"runtime"
)

const (
	// Product prefixes the CLI banner.
	Product = "marginreq"
	// sdkAgent prefixes the User-Agent a transport sends to the margin service.
	sdkAgent = "margin-sdk-go"

	shortCommitLen = 7
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo is the JSON-friendly snapshot of the stamped variables.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GitBranch string `json:"git_branch"`
	GoVersion string `json:"go_version"`
	UserAgent string `json:"user_agent"`
}

func Get() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		GoVersion: GoVersion,
		UserAgent: UserAgent(),
	}
}

// String is the multi-line banner printed by `marginreq -version`.
func String() string {
	b := Get()
	return fmt.Sprintf("%s %s\nBuild Time: %s\nGit Commit: %s\nGit Branch: %s\nGo Version: %s",
		Product, b.Version, b.BuildTime, b.GitCommit, b.GitBranch, b.GoVersion)
}

// UserAgent identifies the SDK build to the margin service, e.g.
// "margin-sdk-go/v0.3.0 (0123456) (go1.23.9)".
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s)", sdkAgent, Short(), GoVersion)
}

// Short is the version with an abbreviated commit when one was stamped.
func Short() string {
	if GitCommit == "unknown" || len(GitCommit) <= shortCommitLen {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, GitCommit[:shortCommitLen])
}
