// Package config provides configuration for the backdesk server.
//
// Config file locations (priority order):
//  1. $BACKDESK_CONFIG
//  2. ./backdesk.yaml
//
// The Firestore bearer token is never stored in the file; it is read
// from $BACKDESK_FIRESTORE_TOKEN at call time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig locates the relational store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DocStoreConfig locates the document-store snapshot file.
type DocStoreConfig struct {
	DataFile string `yaml:"data_file"`
}

// FirestoreConfig identifies the remote project indexes are provisioned
// into and the definitions file describing them.
type FirestoreConfig struct {
	ProjectID   string `yaml:"project_id"`
	DatabaseID  string `yaml:"database_id"`
	Endpoint    string `yaml:"endpoint"`
	IndexesFile string `yaml:"indexes_file"`
}

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	DocStore  DocStoreConfig  `yaml:"docstore"`
	Firestore FirestoreConfig `yaml:"firestore"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := findConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

func findConfigPath() string {
	if path := os.Getenv("BACKDESK_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat("./backdesk.yaml"); err == nil {
		return "./backdesk.yaml"
	}
	return ""
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "./backdesk.db"
	}
	if c.DocStore.DataFile == "" {
		c.DocStore.DataFile = "./backdesk_docs.bdsk"
	}
	if c.Firestore.DatabaseID == "" {
		c.Firestore.DatabaseID = "(default)"
	}
	if c.Firestore.IndexesFile == "" {
		c.Firestore.IndexesFile = "./firestore.indexes.json"
	}
}

// FirestoreToken returns the bearer token for the Admin API, if set in
// the environment.
func FirestoreToken() string {
	return os.Getenv("BACKDESK_FIRESTORE_TOKEN")
}
