package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var ErrAPIURLInvalid = errors.New("API_URL must be an absolute URL")

type Config struct {
	APIURL   string         `mapstructure:"api_url"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServerConfig struct {
	Port             int    `mapstructure:"port"`
	GinMode          string `mapstructure:"gin_mode"`
	CORSAllowOrigins string `mapstructure:"cors_allow_origins"`
	EnablePprof      bool   `mapstructure:"enable_pprof"`
}

type LogConfig struct {
	Format string `mapstructure:"format"`
}

// DatabaseConfig selects the database. If Host is set, postgres is used,
// otherwise a sqlite file in DataDir.
type DatabaseConfig struct {
	DataDir  string `mapstructure:"data_dir"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// environment maps configuration keys to the environment variables they are read from.
var environment = map[string]string{
	"api_url":                   "API_URL",
	"server.port":               "PORT",
	"server.gin_mode":           "GIN_MODE",
	"server.cors_allow_origins": "CORS_ALLOW_ORIGINS",
	"server.enable_pprof":       "ENABLE_PPROF",
	"log.format":                "LOG_FORMAT",
	"database.data_dir":         "DATA_DIR",
	"database.host":             "DB_HOST",
	"database.port":             "DB_PORT",
	"database.user":             "DB_USER",
	"database.password":         "DB_PASSWORD",
	"database.name":             "DB_NAME",
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.cors_allow_origins", "")
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("log.format", "")
	v.SetDefault("database.data_dir", "data")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "moneybox")

	for key, env := range environment {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("parsing configuration: %w", err)
	}

	if _, err := c.URL(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// URL returns the parsed API_URL.
func (c Config) URL() (*url.URL, error) {
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrAPIURLInvalid, c.APIURL)
	}

	return u, nil
}

// Addr returns the listen address of the server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// AllowOrigins returns the origins allowed by CORS. An empty list disables CORS.
func (c Config) AllowOrigins() []string {
	return strings.Fields(c.Server.CORSAllowOrigins)
}

// Postgres reports whether the postgres store is configured.
func (d DatabaseConfig) Postgres() bool {
	return d.Host != ""
}

// DSN returns the connection string for the configured database.
func (d DatabaseConfig) DSN() string {
	if d.Postgres() {
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
			Path:   "/" + d.Name,
		}
		if d.User != "" {
			u.User = url.UserPassword(d.User, d.Password)
		}

		return u.String()
	}

	return filepath.Join(d.DataDir, "moneybox.db")
}
