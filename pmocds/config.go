// Package pmocds glues the media store, the renderer registry and the
// DIDL mapper behind the ContentDirectory control endpoint.
package pmocds

import (
	_ "embed"
	"fmt"
	"os"
	"os/user"
	"path"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/fileutils"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/netutils"
)

//go:embed pmoserv.yaml
var defaultConfig []byte

const envConfigFile = "PMOSERV_CONFIG"

// Config is the server configuration.
type Config struct {
	Host struct {
		BaseURL  string `yaml:"base_url"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"host"`

	Cache struct {
		Dir   string `yaml:"dir"`
		Limit int    `yaml:"limit"`
	} `yaml:"cache"`

	Server struct {
		FriendlyName string `yaml:"friendly_name"`
		UDN          string `yaml:"udn"`
	} `yaml:"server"`

	Renderers struct {
		Dir string `yaml:"dir"`
	} `yaml:"renderers"`

	path  string
	mutex sync.Mutex
}

// LoadConfig loads the configuration, trying in order: the given path,
// the PMOSERV_CONFIG environment variable, .pmoserv.yml in the working
// directory, .pmoserv.yml in the user's home, and finally the embedded
// defaults. The first writable candidate becomes the save location.
func LoadConfig(filename string) *Config {
	cfg := &Config{}
	var data []byte
	var err error

	path := filename
	if path != "" {
		log.Infof("✅ Trying to load config %s", path)
		data, err = os.ReadFile(path)
		if err != nil {
			log.Warnf("❌ cannot read config file %s", path)
			path = ""
		}
	}

	if path == "" {
		path = os.Getenv(envConfigFile)
		if path != "" {
			log.Infof("✅ Trying to load config specified in env var %s", envConfigFile)
			data, err = os.ReadFile(path)
			if err != nil {
				log.Warnf("❌ cannot read config file %s specified in env var %s", path, envConfigFile)
				path = ""
			}
		}
	}

	if path == "" {
		path = ".pmoserv.yml"
		data, err = os.ReadFile(path)
		if err != nil {
			path = ""
		}
	}

	if path == "" {
		path = getHomeYmlPath()
		data, err = os.ReadFile(path)
		if err != nil {
			path = ""
		}
	}

	if path == "" {
		log.Infof("✅ Using default embedded config")
		data = defaultConfig
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Panicf("invalid YAML config: %v", err)
	}

	if path == "" {
		switch {
		case filename != "" && fileutils.IsWriteable(filename):
			path = filename
		case os.Getenv(envConfigFile) != "" && fileutils.IsWriteable(os.Getenv(envConfigFile)):
			path = os.Getenv(envConfigFile)
		case fileutils.IsWriteable(".pmoserv.yml"):
			path = ".pmoserv.yml"
		case fileutils.IsWriteable(getHomeYmlPath()):
			path = getHomeYmlPath()
		}
	} else if !fileutils.IsWriteable(path) {
		path = ""
	}
	cfg.path = path

	cfg.ensureUDN()
	return cfg
}

// Save writes the configuration back to its load location.
func (cfg *Config) Save() error {
	cfg.mutex.Lock()
	defer cfg.mutex.Unlock()

	if cfg.path == "" {
		return fmt.Errorf("no writable config location")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.path, data, 0644)
}

// ensureUDN generates and persists the device UDN on first start.
func (cfg *Config) ensureUDN() {
	if cfg.Server.UDN != "" {
		return
	}
	cfg.Server.UDN = "uuid:" + uuid.New().String()
	if err := cfg.Save(); err != nil {
		log.Warnf("❌ cannot persist generated UDN: %v", err)
	} else {
		log.Infof("✅ Generated device UDN %s", cfg.Server.UDN)
	}
}

// BaseURL returns the configured external URL, or one derived from the
// outbound interface address.
func (cfg *Config) BaseURL() string {
	if cfg.Host.BaseURL != "" {
		return cfg.Host.BaseURL
	}
	ip, _ := netutils.GuessLocalIP()
	port := cfg.Host.HTTPPort
	if port == 0 {
		port = 5002
	}
	return fmt.Sprintf("http://%s:%d", ip, port)
}

func getHomeYmlPath() string {
	usr, err := user.Current()
	if err != nil {
		return ".pmoserv.yml"
	}
	return path.Join(usr.HomeDir, ".pmoserv.yml")
}
