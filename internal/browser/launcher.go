// Package browser opens an article's source page in the user's browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/debuglog"
)

var ErrUnsupportedURL = errors.New("only http and https URLs can be opened")

// Runner starts a command without waiting for it to finish.
type Runner func(name string, args ...string) error

type Launcher struct {
	opener   string
	registry *Registry
	run      Runner
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewRegistry(UserOverridePath())
	if err != nil {
		registry = &Registry{openers: make(map[string]OpenerDefinition)}
	}
	return &Launcher{
		opener:   cfg.Browser.Opener,
		registry: registry,
		run:      startDetached,
	}
}

// WithRunner replaces how commands are started. Tests use it to avoid
// spawning processes.
func (l *Launcher) WithRunner(run Runner) *Launcher {
	l.run = run
	return l
}

// Open opens rawURL with the configured opener.
func (l *Launcher) Open(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	if l.opener == "" {
		return fmt.Errorf("no application configured to open URLs")
	}

	name, args, err := l.registry.Command(l.opener, u.String())
	if err != nil {
		return err
	}

	debuglog.Infof("opening %s with %s", u.String(), name)
	if err := l.run(name, args...); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
