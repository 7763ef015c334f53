package localize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry resolves jurisdiction codes to merged LocalizationConfigs,
// memoizing merged results. The merged-config cache is the only shared
// mutable state in the core (§5); writes are serialized behind mu, and
// readers never observe a torn map.
type Registry struct {
	mu      sync.RWMutex
	merged  map[string]Config
	builtin map[string]Config
	dir     string // optional config directory root; empty means built-ins only
}

// NewRegistry constructs a Registry rooted at dir (may be empty, meaning
// only the in-memory built-in table is consulted). Absence of a config
// directory is non-fatal.
func NewRegistry(dir string) *Registry {
	return &Registry{
		merged:  make(map[string]Config),
		builtin: defaultBuiltinConfigs(),
		dir:     dir,
	}
}

// Resolve performs the hierarchical resolution described in §4.2.
func (r *Registry) Resolve(jurisdiction string) (Config, error) {
	j := strings.ToLower(strings.TrimSpace(jurisdiction))

	r.mu.RLock()
	if cached, ok := r.merged[j]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	base, found, err := r.loadBase(j)
	if err != nil {
		// A config file that exists but cannot be read or parsed is
		// treated as not found: resolution falls through to the parent
		// code. The error is not returned, so callers receive no warning.
		found = false
	}

	if !found {
		if idx := strings.LastIndex(j, "/"); idx >= 0 {
			parent, perr := r.Resolve(j[:idx])
			if perr == nil {
				return r.cacheAndReturn(j, parent), nil
			}
		}
		return Empty(j), nil
	}

	if base.Parent == "" {
		return r.cacheAndReturn(j, base), nil
	}

	parent, err := r.Resolve(base.Parent)
	if err != nil {
		return r.cacheAndReturn(j, base), nil
	}

	merged := Merge(parent, base)
	return r.cacheAndReturn(j, merged), nil
}

func (r *Registry) cacheAndReturn(j string, cfg Config) Config {
	r.mu.Lock()
	r.merged[j] = cfg
	r.mu.Unlock()
	return cfg
}

// loadBase obtains the base (unmerged) config for jurisdiction j: from the
// built-in table, or (if a config directory is configured) from a YAML
// file at <dir>/<country>/<region>.yaml for a two-part code, or
// <dir>/<country>/base.yaml for a one-part code.
func (r *Registry) loadBase(j string) (Config, bool, error) {
	if cfg, ok := r.builtin[j]; ok {
		return cfg, true, nil
	}

	if r.dir == "" {
		return Config{}, false, nil
	}

	parts := strings.SplitN(j, "/", 2)
	var path string
	if len(parts) == 2 {
		path = filepath.Join(r.dir, parts[0], parts[1]+".yaml")
	} else {
		path = filepath.Join(r.dir, parts[0], "base.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("localize: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("localize: parse %s: %w", path, err)
	}
	cfg.normalizeStopWords()
	if cfg.Jurisdiction == "" {
		cfg.Jurisdiction = j
	}
	return cfg, true, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// DefaultRegistry returns the process-wide Registry singleton, lazily
// initialized on first use from the configuration directory discovered by
// walking upward from the current working directory (§6 "Configuration
// environment"). Absence of a discoverable directory is non-fatal — the
// singleton falls back to built-in configs only.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		wd, err := os.Getwd()
		if err != nil {
			defaultReg = NewRegistry("")
			return
		}
		defaultReg = NewRegistry(DiscoverConfigDir(wd))
	})
	return defaultReg
}

// DiscoverConfigDir walks upward from start looking for a directory named
// "localization"; returns "" if none is found. Absence is non-fatal (§6).
func DiscoverConfigDir(start string) string {
	dir := start
	for {
		candidate := filepath.Join(dir, "localization")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
