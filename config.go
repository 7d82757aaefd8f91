package fritzbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultHost is used when no host is configured. FRITZ!Box routers answer
// on this name out of the box.
const DefaultHost = "fritz.box"

// Settings are read from the config file and the environment under these
// keys. The file keeps the shell-sourceable KEY=VALUE form, so a config
// written for use with `source` loads unchanged.
const (
	envConfig   = "FRITZBOX_CONFIG"
	envHost     = "FRITZBOX_HOST"
	envUsername = "FRITZBOX_USERNAME"
	envPassword = "FRITZBOX_PASSWORD"
	envCACert   = "FRITZBOX_CACERT"
	envDebug    = "FRITZBOX_DEBUG"
)

// Config holds the connection settings for a FRITZ!Box TR-064 endpoint.
type Config struct {
	// Host is the router name or address, optionally with an explicit
	// port. Without a port the TR-064 TLS port 49443 is used.
	Host string
	// Username and Password are the credentials for the HTTP Digest
	// exchange. A dedicated router user with permission to change port
	// forwardings is enough.
	Username string
	Password string
	// CACert is the path of a PEM file holding the router's certificate.
	// When empty, server certificate verification is disabled.
	CACert string
}

// DefaultConfigPath returns the per-user config file location,
// ~/.config/fritzbox-forwad-port/config, honouring the FRITZBOX_CONFIG
// override.
func DefaultConfigPath() string {
	if path := os.Getenv(envConfig); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fritzbox-forwad-port", "config")
}

// LoadConfig reads the config file at path and overlays values found in the
// environment, the environment winning. A missing file is not an error: the
// environment alone can supply everything. The credentials must be present
// after the merge; the host falls back to DefaultHost.
func LoadConfig(path string) (Config, error) {
	values := map[string]string{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			values, err = godotenv.Read(path)
			if err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	pick := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return values[key]
	}

	cfg := Config{
		Host:     pick(envHost),
		Username: pick(envUsername),
		Password: pick(envPassword),
		CACert:   pick(envCACert),
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Username == "" {
		return Config{}, fmt.Errorf("config: %s is not set", envUsername)
	}
	if cfg.Password == "" {
		return Config{}, fmt.Errorf("config: %s is not set", envPassword)
	}
	return cfg, nil
}

// DebugFromEnv reports whether FRITZBOX_DEBUG asks for request and response
// transcripts.
func DebugFromEnv() bool {
	v, err := strconv.ParseBool(os.Getenv(envDebug))
	return err == nil && v
}
