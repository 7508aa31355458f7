package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PixPMusic/launchdecode/internal/launchpad"
	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is returned when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// DeviceConfig holds configuration for a single Launchpad
type DeviceConfig struct {
	ID      string `json:"id" yaml:"id"`                                 // Unique identifier
	Name    string `json:"name" yaml:"name"`                             // User-friendly name
	InPort  string `json:"in_port,omitempty" yaml:"in_port,omitempty"`   // MIDI input port name, empty = match by keyword
	OutPort string `json:"out_port,omitempty" yaml:"out_port,omitempty"` // MIDI output port name, used for inquiries
	Dialect string `json:"dialect" yaml:"dialect"`                       // mini, mini-mk3 or mk2
	Policy  string `json:"policy,omitempty" yaml:"policy,omitempty"`     // fail-fast or degrade, empty = dialect default
}

// NewDeviceConfig creates a new device config with a generated ID
func NewDeviceConfig(name string, dialect launchpad.Dialect) DeviceConfig {
	return DeviceConfig{
		ID:      uuid.New().String(),
		Name:    name,
		Dialect: string(dialect),
	}
}

// Decoder builds the decoder this device is configured for
func (d DeviceConfig) Decoder() (*launchpad.Decoder, error) {
	dialect, err := launchpad.ParseDialect(d.Dialect)
	if err != nil {
		return nil, err
	}

	var opts []launchpad.Option
	if d.Policy != "" {
		policy, err := launchpad.ParsePolicy(d.Policy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, launchpad.WithPolicy(policy))
	}
	return launchpad.NewDecoder(dialect, opts...)
}

// Config holds application configuration
type Config struct {
	Devices []DeviceConfig `json:"devices" yaml:"devices"`
	// MonitorHistory is how many decoded events the monitor window keeps
	MonitorHistory int `json:"monitor_history,omitempty" yaml:"monitor_history,omitempty"`
}

const defaultMonitorHistory = 200

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "launchdecode"), nil
}

// ConfigPath returns the full path to the default config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns the config used when no file exists
func Default() *Config {
	return &Config{
		Devices:        []DeviceConfig{},
		MonitorHistory: defaultMonitorHistory,
	}
}

// Load reads the config from path, or from ConfigPath if path is empty.
// A missing file yields the default config.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open config file: %w", err)
	}

	cfg, err := Parse(data, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config data
func Parse(data []byte, asYAML bool) (*Config, error) {
	var cfg Config
	if asYAML {
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	}

	// Ensure slices are not nil
	if cfg.Devices == nil {
		cfg.Devices = []DeviceConfig{}
	}
	if cfg.MonitorHistory <= 0 {
		cfg.MonitorHistory = defaultMonitorHistory
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks dialects, policies and device IDs
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Devices))
	for i, d := range c.Devices {
		if d.ID == "" {
			return fmt.Errorf("%w: device %d has no id", ErrInvalidConfig, i)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate device id %s", ErrInvalidConfig, d.ID)
		}
		seen[d.ID] = true

		if _, err := d.Decoder(); err != nil {
			return fmt.Errorf("%w: device %q: %w", ErrInvalidConfig, d.Name, err)
		}
	}
	return nil
}

// Save writes the config to path, or to ConfigPath if path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AddDevice adds a new device to the config
func (c *Config) AddDevice(device DeviceConfig) {
	c.Devices = append(c.Devices, device)
}

// RemoveDevice removes a device by ID
func (c *Config) RemoveDevice(id string) {
	for i, d := range c.Devices {
		if d.ID == id {
			c.Devices = append(c.Devices[:i], c.Devices[i+1:]...)
			return
		}
	}
}

// GetDevice returns a device by ID, or nil if not found
func (c *Config) GetDevice(id string) *DeviceConfig {
	for i := range c.Devices {
		if c.Devices[i].ID == id {
			return &c.Devices[i]
		}
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
