package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
)

const (
	defaultAPIURL       = "https://bingmine-backend.onrender.com"
	defaultLoggingLevel = logger.LevelInfo
	defaultGatewayAddr  = "localhost:8080"
)

type Config struct {
	// Default logging level
	LogLevel string

	// Backend API base URL
	APIURL string

	// Path to the local credentials database. Empty means the default
	// location under the user home directory
	CredentialsPath string

	// Address the local web gateway listens on
	GatewayAddr string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		APIURL:      defaultAPIURL,
		GatewayAddr: defaultGatewayAddr,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"BINGMINE_API_URL":      setString(&c.APIURL),
		"BINGMINE_LOG_LEVEL":    setString(&c.LogLevel),
		"BINGMINE_CREDENTIALS":  setString(&c.CredentialsPath),
		"BINGMINE_GATEWAY_ADDR": setString(&c.GatewayAddr),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

// ParseFlags parses global flags and returns the remaining arguments, which
// carry the subcommand and its parameters.
func (c *Config) ParseFlags(args []string) ([]string, error) {
	fs := pflag.NewFlagSet("bingmine", pflag.ContinueOnError)

	fs.StringVarP(&c.APIURL, "api-url", "u", c.APIURL, "Backend API base URL")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.CredentialsPath, "credentials", "c", c.CredentialsPath, "Path to the credentials database")
	fs.StringVarP(&c.GatewayAddr, "gateway-addr", "g", c.GatewayAddr, "Local web gateway listen address")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ResolveCredentialsPath returns the configured path or the default under
// the user home directory, creating the parent directory if needed.
func (c *Config) ResolveCredentialsPath() (string, error) {
	path := c.CredentialsPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, ".bingmine", "credentials.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	return path, nil
}
