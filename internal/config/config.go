// Package config loads and saves a YAML configuration holding the server
// address to connect to, the demo index database path, and the qtv relay's
// listen address. Neither cmd/qwclient nor cmd/qwreplay reads it; both take
// their settings from command-line flags only.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level CLI configuration document.
type Config struct {
	Client ClientConfig `yaml:"client"`
	Replay ReplayConfig `yaml:"replay"`
	QTV    QTVConfig    `yaml:"qtv"`
}

// ClientConfig configures cmd/qwclient.
type ClientConfig struct {
	Server string `yaml:"server"` // host:port to connect to
	Port   int    `yaml:"port"`   // local qport
	Name   string `yaml:"name"`   // userinfo "name" key
}

// ReplayConfig configures cmd/qwreplay.
type ReplayConfig struct {
	IndexPath string `yaml:"indexPath"` // sqlite demo-index database path
}

// QTVConfig configures the qtv relay.
type QTVConfig struct {
	ListenAddr string `yaml:"listenAddr"`
	JWTSecret  string `yaml:"jwtSecret"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Client: ClientConfig{Server: "127.0.0.1:27500", Port: 27501, Name: "player"},
		Replay: ReplayConfig{IndexPath: "demoindex.db"},
		QTV:    QTVConfig{ListenAddr: ":28000"},
	}
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
