package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/otafleet-io/fleetctl/pkg/log"
)

// Config is the session handle every backend call receives. It is loaded once
// per invocation and passed by exclusive mutable reference into exactly one
// dispatch.
type Config struct {
	CampaignerURL string        `mapstructure:"campaigner_url"`
	DirectorURL   string        `mapstructure:"director_url"`
	RegistryURL   string        `mapstructure:"registry_url"`
	ReposerverURL string        `mapstructure:"reposerver_url"`
	Token         string        `mapstructure:"token"`
	Timeout       time.Duration `mapstructure:"timeout"`

	// path is the file this config was loaded from, kept for Save.
	path string
}

// InitOptions carries the flags of the `init` command.
type InitOptions struct {
	CampaignerURL string
	DirectorURL   string
	RegistryURL   string
	ReposerverURL string
	Token         string
	Force         bool

	// Path overrides the default config file location.
	Path string
}

const envConfigPath = "FLEETCTL_CONFIG"

// DefaultPath resolves the config file location: $FLEETCTL_CONFIG when set,
// otherwise <user config dir>/fleetctl/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(envConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "fleetctl", "config.toml"), nil
}

// Load reads the config file at path (or the default location when path is
// empty), applying FLEETCTL_* environment overrides.
func Load(path string) (*Config, error) {
	var err error
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("FLEETCTL")
	v.AutomaticEnv()
	v.SetDefault("timeout", 30*time.Second)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load config %s: %w (run `fleetctl init` first)", path, err)
	}

	cfg := &Config{path: path}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	log.Debug("config loaded", "path", path)
	return cfg, nil
}

// Init validates the bootstrap flags and writes a fresh config file. An
// existing file is only replaced with Force.
func Init(opts InitOptions) error {
	path := opts.Path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	for name, u := range map[string]string{
		"campaigner-url": opts.CampaignerURL,
		"director-url":   opts.DirectorURL,
		"registry-url":   opts.RegistryURL,
		"reposerver-url": opts.ReposerverURL,
	} {
		if err := validateURL(u); err != nil {
			return fmt.Errorf("init: --%s: %w", name, err)
		}
	}

	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("init: %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("campaigner_url", opts.CampaignerURL)
	v.Set("director_url", opts.DirectorURL)
	v.Set("registry_url", opts.RegistryURL)
	v.Set("reposerver_url", opts.ReposerverURL)
	v.Set("token", opts.Token)
	v.Set("timeout", (30 * time.Second).String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("init: write %s: %w", path, err)
	}

	log.Info("config written", "path", path)
	return nil
}

// Save persists the current state back to the file it was loaded from, e.g.
// after a session token refresh.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("save config: no backing file")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("campaigner_url", c.CampaignerURL)
	v.Set("director_url", c.DirectorURL)
	v.Set("registry_url", c.RegistryURL)
	v.Set("reposerver_url", c.ReposerverURL)
	v.Set("token", c.Token)
	v.Set("timeout", c.Timeout.String())

	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("save config %s: %w", c.path, err)
	}
	return nil
}

func (c *Config) validate() error {
	for name, u := range map[string]string{
		"campaigner_url": c.CampaignerURL,
		"director_url":   c.DirectorURL,
		"registry_url":   c.RegistryURL,
		"reposerver_url": c.ReposerverURL,
	} {
		if err := validateURL(u); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: host is required", raw)
	}
	return nil
}
