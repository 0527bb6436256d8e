package pmorender

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed renderers.yaml
var defaultProfiles []byte

const envProfileDir = "PMOSERV_RENDERERS"

// Registry holds the loaded renderer profiles keyed by lowercased name.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	fallback *Profile
}

// LoadRegistry reads every *.yaml profile from dir on top of the
// embedded defaults. dir may be empty, in which case the PMOSERV_RENDERERS
// environment variable is consulted before falling back on the embedded
// set alone. A broken individual file is logged and skipped, never fatal:
// a renderer with a missing profile simply gets the default one.
func LoadRegistry(dir string) (*Registry, error) {
	r := &Registry{profiles: make(map[string]*Profile)}

	if err := r.loadYAML(defaultProfiles, "embedded defaults"); err != nil {
		// The embedded set ships with the binary, failing to parse it
		// is a build defect.
		return nil, fmt.Errorf("embedded renderer profiles are invalid: %w", err)
	}

	if dir == "" {
		dir = os.Getenv(envProfileDir)
	}
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Warnf("❌ cannot read renderer profile dir %s: %v", dir, err)
		} else {
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
					continue
				}
				path := filepath.Join(dir, entry.Name())
				data, err := os.ReadFile(path)
				if err != nil {
					log.Warnf("❌ cannot read renderer profile %s: %v", path, err)
					continue
				}
				if err := r.loadYAML(data, path); err != nil {
					log.Warnf("❌ invalid renderer profile %s: %v", path, err)
				}
			}
		}
	}

	log.Infof("✅ Loaded %d renderer profiles", len(r.profiles))
	return r, nil
}

func (r *Registry) loadYAML(data []byte, origin string) error {
	var doc struct {
		Renderers []*Profile `yaml:"renderers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range doc.Renderers {
		if p == nil || p.Name == "" {
			log.Warnf("❌ skipping unnamed renderer profile from %s", origin)
			continue
		}
		key := strings.ToLower(p.Name)
		if key == "default" {
			r.fallback = p
			continue
		}
		r.profiles[key] = p
	}
	return nil
}

// Get returns the profile for a renderer name, or the default profile
// when the name is unknown.
func (r *Registry) Get(name string) *Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.profiles[strings.ToLower(name)]; ok {
		return p
	}
	return r.fallback
}

// Match finds the profile whose name occurs in the User-Agent header,
// the usual way a renderer identifies itself. Unknown agents get the
// default profile.
func (r *Registry) Match(userAgent string) *Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent := strings.ToLower(userAgent)
	for key, p := range r.profiles {
		if strings.Contains(agent, key) {
			return p
		}
	}
	return r.fallback
}

// Names lists the known renderer names, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		names = append(names, p.Name)
	}
	return names
}
