package browser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/sift/internal/config"
)

type recorded struct {
	name string
	args []string
}

func testLauncher(t *testing.T, opener, goos string) (*Launcher, *[]recorded) {
	t.Helper()
	registry, err := NewRegistry()
	require.NoError(t, err)
	registry.goos = goos

	var calls []recorded
	l := &Launcher{opener: opener, registry: registry}
	l.WithRunner(func(name string, args ...string) error {
		calls = append(calls, recorded{name: name, args: args})
		return nil
	})
	return l, &calls
}

func TestLauncher_Open(t *testing.T) {
	tests := []struct {
		name     string
		opener   string
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin open", "open", "darwin", "open", []string{"https://example.com/a"}},
		{"linux xdg-open", "xdg-open", "linux", "xdg-open", []string{"https://example.com/a"}},
		{"windows start", "start", "windows", "cmd", []string{"/c", "start", "", "https://example.com/a"}},
		{"firefox new tab", "firefox", "linux", "firefox", []string{"--new-tab", "https://example.com/a"}},
		{"unknown opener", "my-browser", "linux", "my-browser", []string{"https://example.com/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, calls := testLauncher(t, tt.opener, tt.goos)
			require.NoError(t, l.Open("https://example.com/a"))
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.wantName, (*calls)[0].name)
			assert.Equal(t, tt.wantArgs, (*calls)[0].args)
		})
	}
}

func TestLauncher_RejectsNonHTTP(t *testing.T) {
	l, calls := testLauncher(t, "open", "darwin")

	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "ftp://example.com", "http://"} {
		err := l.Open(raw)
		assert.ErrorIs(t, err, ErrUnsupportedURL, "url %q", raw)
	}
	assert.Empty(t, *calls)
}

func TestLauncher_UnsupportedPlatform(t *testing.T) {
	l, calls := testLauncher(t, "open", "linux")
	err := l.Open("https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported on linux")
	assert.Empty(t, *calls)
}

func TestLauncher_RunnerError(t *testing.T) {
	l, _ := testLauncher(t, "xdg-open", "linux")
	l.WithRunner(func(string, ...string) error { return errors.New("exec: not found") })

	err := l.Open("https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start xdg-open")
}

func TestLauncher_NoOpener(t *testing.T) {
	l, _ := testLauncher(t, "", "linux")
	assert.Error(t, l.Open("https://example.com"))
}

func TestNewLauncher_UsesConfig(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Browser.Opener = "firefox"
	l := NewLauncher(cfg)
	assert.Equal(t, "firefox", l.opener)
	assert.NotNil(t, l.registry)
}

func TestRegistry_UserOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openers.toml")
	content := `
[openers.xdg-open]
platforms = ["linux"]
args = ["--verbose"]

[openers.lynx]
platforms = ["linux"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := NewRegistry(path, filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	r.goos = "linux"

	name, args, err := r.Command("xdg-open", "https://x.test")
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
	assert.Equal(t, []string{"--verbose", "https://x.test"}, args)
	assert.Contains(t, r.Names(), "lynx")
}

func TestRegistry_CommandDoesNotAliasArgs(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	r.goos = "windows"

	_, first, err := r.Command("start", "https://one.test")
	require.NoError(t, err)
	_, second, err := r.Command("start", "https://two.test")
	require.NoError(t, err)
	assert.Equal(t, "https://one.test", first[len(first)-1])
	assert.Equal(t, "https://two.test", second[len(second)-1])
}
