// Package config persists client preferences: remembered login details,
// the terms acceptance flag, notification and color settings.
//
// The file lives in ~/.parley and may be written as JSON, YAML or TOML;
// the format follows the file extension and Save writes back in the
// format that was loaded.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	perrors "github.com/zhubert/parley/internal/errors"
	"gopkg.in/yaml.v3"
)

// Defaults used when the file does not set a value.
const (
	DefaultServer    = "localhost:8989"
	DefaultTransport = "tcp"

	DefaultWhisperColor  = "#0051FF"
	DefaultErrorColor    = "#FF0000"
	DefaultPersonalColor = "#33A314"
)

// candidate file names, in lookup order
var fileNames = []string{"config.json", "config.yaml", "config.yml", "config.toml"}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoginInfo is what "remember me" stores. The password is kept only as the
// hash the server expects, never in clear text.
type LoginInfo struct {
	Server       string `json:"server,omitempty" yaml:"server,omitempty" toml:"server,omitempty"`
	Username     string `json:"username,omitempty" yaml:"username,omitempty" toml:"username,omitempty"`
	PasswordHash string `json:"password_hash,omitempty" yaml:"password_hash,omitempty" toml:"password_hash,omitempty"`
}

// Colors are the message highlight colors as #RRGGBB.
type Colors struct {
	Whisper  string `json:"whisper" yaml:"whisper" toml:"whisper"`
	Error    string `json:"error" yaml:"error" toml:"error"`
	Personal string `json:"personal" yaml:"personal" toml:"personal"`
}

// Config holds the application configuration
type Config struct {
	Login                LoginInfo `json:"login" yaml:"login" toml:"login"`
	RememberMe           bool      `json:"remember_me" yaml:"remember_me" toml:"remember_me"`
	AgreedToTerms        bool      `json:"agreed_to_terms" yaml:"agreed_to_terms" toml:"agreed_to_terms"`
	NotificationsEnabled bool      `json:"notifications_enabled" yaml:"notifications_enabled" toml:"notifications_enabled"`
	Theme                string    `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	Transport            string    `json:"transport,omitempty" yaml:"transport,omitempty" toml:"transport,omitempty"`
	Colors               Colors    `json:"colors" yaml:"colors" toml:"colors"`

	mu       sync.RWMutex
	filePath string
}

// New returns a config with defaults that will be saved to path.
func New(path string) *Config {
	return &Config{
		NotificationsEnabled: true,
		Transport:            DefaultTransport,
		Colors: Colors{
			Whisper:  DefaultWhisperColor,
			Error:    DefaultErrorColor,
			Personal: DefaultPersonalColor,
		},
		filePath: path,
	}
}

// Dir returns the config directory, ~/.parley.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// FindConfigFile returns the first config file present in dir, or the
// default JSON path when there is none yet.
func FindConfigFile(dir string) string {
	for _, name := range fileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, fileNames[0])
}

// Load reads the config from ~/.parley, or returns defaults if there is
// no file yet.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(FindConfigFile(dir))
}

// LoadFrom reads the config at path. A missing file yields defaults bound
// to path.
func LoadFrom(path string) (*Config, error) {
	cfg := New(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := unmarshal(path, data, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func marshal(path string, cfg *Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	case ".toml":
		return toml.Marshal(cfg)
	default:
		return json.MarshalIndent(cfg, "", "  ")
	}
}

// ensureInitialized fills values a hand-edited file may have blanked.
// Only called from LoadFrom before the config is shared.
func (c *Config) ensureInitialized() {
	if c.Transport == "" {
		c.Transport = DefaultTransport
	}
	if c.Colors.Whisper == "" {
		c.Colors.Whisper = DefaultWhisperColor
	}
	if c.Colors.Error == "" {
		c.Colors.Error = DefaultErrorColor
	}
	if c.Colors.Personal == "" {
		c.Colors.Personal = DefaultPersonalColor
	}
}

// ValidColor reports whether s is a #RRGGBB color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.Transport {
	case "tcp", "ws":
	default:
		return perrors.ConfigInvalid(fmt.Sprintf("unknown transport %q", c.Transport))
	}
	for name, v := range map[string]string{
		"whisper":  c.Colors.Whisper,
		"error":    c.Colors.Error,
		"personal": c.Colors.Personal,
	} {
		if !ValidColor(v) {
			return perrors.ConfigInvalid(fmt.Sprintf("%s color %q is not #RRGGBB", name, v))
		}
	}
	if c.Login.PasswordHash != "" && c.Login.Username == "" {
		return perrors.ConfigInvalid("saved password without a username")
	}
	return nil
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0700); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	data, err := marshal(c.filePath, c)
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	// The file may hold a password hash.
	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file this config is bound to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Remove deletes the config file. A missing file is not an error.
func (c *Config) Remove() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func errInvalidColor(v string) error {
	return perrors.ConfigInvalid(fmt.Sprintf("color %q is not #RRGGBB", v))
}
