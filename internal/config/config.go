package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PathEnv overrides the config file path given on the command line.
const PathEnv = "WORLDCORE_CONFIG"

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultDatabase returns connection parameters of a local development database.
func DefaultDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     5432,
		User:     "worldcore",
		Password: "worldcore",
		DBName:   "worldcore",
		SSLMode:  "disable",
	}
}

// ResolvePath returns the path set in PathEnv, or fallback when unset.
func ResolvePath(fallback string) string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return fallback
}

// loadYAML decodes path over cfg. A missing file leaves cfg untouched.
func loadYAML(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
