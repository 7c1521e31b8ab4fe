package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, GitCommit = v, c }(Version, GitCommit)

	Version, GitCommit = "v1.2.0", "unknown"
	assert.Equal(t, "v1.2.0", Short())

	GitCommit = "0123456789abcdef"
	assert.Equal(t, "v1.2.0 (0123456)", Short())
	assert.True(t, strings.HasPrefix(UserAgent(), "margin-sdk-go/v1.2.0 (0123456)"))
}

func TestString(t *testing.T) {
	s := String()
	assert.True(t, strings.HasPrefix(s, "marginreq "+Version))
	assert.Contains(t, s, "Go Version: "+GoVersion)
}

func TestGetCarriesUserAgent(t *testing.T) {
	defer func(v, c string) { Version, GitCommit = v, c }(Version, GitCommit)

	Version, GitCommit = "v0.3.0", "abc"
	info := Get()
	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "margin-sdk-go/v0.3.0 ("+GoVersion+")", info.UserAgent)
	assert.True(t, strings.HasPrefix(String(), Product+" v0.3.0\n"))
}
