package browser

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

//go:embed openers.toml
var openersTOML []byte

// OpenerDefinition describes how to run one opener.
type OpenerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	// Command overrides the executable; the entry name is used otherwise.
	Command string   `toml:"command,omitempty"`
	Args    []string `toml:"args,omitempty"`
}

type OpenersConfig struct {
	Openers map[string]OpenerDefinition `toml:"openers"`
}

// Registry holds the known opener definitions.
type Registry struct {
	openers map[string]OpenerDefinition
	goos    string
}

// NewRegistry loads the built-in definitions and merges user overrides
// from the given files. Missing files are skipped.
func NewRegistry(overrides ...string) (*Registry, error) {
	var cfg OpenersConfig
	if err := toml.Unmarshal(openersTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing openers.toml: %w", err)
	}

	r := &Registry{openers: cfg.Openers, goos: runtime.GOOS}
	if r.openers == nil {
		r.openers = make(map[string]OpenerDefinition)
	}
	for _, path := range overrides {
		r.merge(path)
	}
	return r, nil
}

// UserOverridePath is where users put their own opener definitions.
func UserOverridePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sift", "openers.toml")
}

func (r *Registry) merge(path string) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var user OpenersConfig
	if err := toml.Unmarshal(data, &user); err != nil {
		return
	}
	for name, def := range user.Openers {
		r.openers[name] = def
	}
}

// Command returns the executable and arguments that open url with the
// named opener. Unknown openers are run as-is with the url as their only
// argument.
func (r *Registry) Command(name, url string) (string, []string, error) {
	def, ok := r.openers[name]
	if !ok {
		return name, []string{url}, nil
	}
	if len(def.Platforms) > 0 && !slices.Contains(def.Platforms, r.goos) {
		return "", nil, fmt.Errorf("%s not supported on %s", name, r.goos)
	}

	exe := name
	if def.Command != "" {
		exe = def.Command
	}
	args := append(slices.Clone(def.Args), url)
	return exe, args, nil
}

// Names lists the defined openers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.openers))
	for name := range r.openers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
