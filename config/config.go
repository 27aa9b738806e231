package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config manages server configuration using Viper
type Config struct {
	v *viper.Viper
}

// Load creates a new configuration with defaults, applying GRAPHSTATS_*
// environment overrides and an optional config file pointed to by
// GRAPHSTATS_CONFIG_FILE.
func Load() (*Config, error) {
	v := viper.New()

	// Server parameters
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Storage parameters
	v.SetDefault("storage.upload_dir", "./uploads")

	// Peeling parameters. An empty binary path selects the in-process
	// bucket peeler; the timeout bounds the external process when used.
	v.SetDefault("peeling.binary", "")
	v.SetDefault("peeling.timeout", 5*time.Minute)

	// Logging parameters
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("GRAPHSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Config{v: v}, nil
}

// Getters for server parameters
func (c *Config) Address() string            { return c.v.GetString("server.address") }
func (c *Config) ReadTimeout() time.Duration { return c.v.GetDuration("server.read_timeout") }
func (c *Config) WriteTimeout() time.Duration {
	return c.v.GetDuration("server.write_timeout")
}

func (c *Config) UploadDir() string { return c.v.GetString("storage.upload_dir") }

func (c *Config) PeelingBinary() string         { return c.v.GetString("peeling.binary") }
func (c *Config) PeelingTimeout() time.Duration { return c.v.GetDuration("peeling.timeout") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}
