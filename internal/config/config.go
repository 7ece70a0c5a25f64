package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port            int           `koanf:"port"`
		BodyLimit       string        `koanf:"body_limit"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"server"`

	Auth struct {
		JWTSecret string `koanf:"jwt_secret"`
		Issuer    string `koanf:"issuer"`
	} `koanf:"auth"`

	RateLimit struct {
		RequestsPerSecond float64 `koanf:"requests_per_second"`
		Burst             int     `koanf:"burst"`
	} `koanf:"rate_limit"`

	Engine struct {
		MaxFiles  int `koanf:"max_files"`
		MaxErrors int `koanf:"max_errors"`
	} `koanf:"engine"`

	Logging struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
		File   string `koanf:"file"`
	} `koanf:"logging"`
}

// Defaults are applied before any file or environment overrides.
var Defaults = map[string]interface{}{
	"server.port":                    8888,
	"server.body_limit":              "10M",
	"server.shutdown_timeout":        "10s",
	"auth.jwt_secret":                "",
	"auth.issuer":                    "",
	"rate_limit.requests_per_second": 20.0,
	"rate_limit.burst":               40,
	"engine.max_files":               2000,
	"engine.max_errors":              5000,
	"logging.level":                  "info",
	"logging.format":                 "console",
	"logging.file":                   "",
}

// envKeys maps AUTOFIX_* variables onto config keys. Section names contain
// underscores, so a plain "_" -> "." replacement is not enough.
var envKeys = map[string]string{
	"server_port":                    "server.port",
	"server_body_limit":              "server.body_limit",
	"server_shutdown_timeout":        "server.shutdown_timeout",
	"auth_jwt_secret":                "auth.jwt_secret",
	"auth_issuer":                    "auth.issuer",
	"rate_limit_requests_per_second": "rate_limit.requests_per_second",
	"rate_limit_burst":               "rate_limit.burst",
	"engine_max_files":               "engine.max_files",
	"engine_max_errors":              "engine.max_errors",
	"logging_level":                  "logging.level",
	"logging_format":                 "logging.format",
	"logging_file":                   "logging.file",
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./autofix.toml", "$HOME/.autofix.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix AUTOFIX_
	k.Load(env.Provider("AUTOFIX_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "AUTOFIX_"))
		if mapped, ok := envKeys[key]; ok {
			return mapped
		}
		return strings.Replace(key, "_", ".", -1)
	}), nil)

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# autofix configuration

[server]
port = 8888
body_limit = "10M"
shutdown_timeout = "10s"

[auth]
# Leave empty to accept unauthenticated requests.
jwt_secret = ""
issuer = ""

[rate_limit]
requests_per_second = 20
burst = 40

[engine]
max_files = 2000
max_errors = 5000

[logging]
level = "info"
format = "console"
# file = "logs/autofix.log"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", config.Server.Port)
	}

	if config.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}

	if config.RateLimit.RequestsPerSecond < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	if config.RateLimit.RequestsPerSecond > 0 && config.RateLimit.Burst == 0 {
		return fmt.Errorf("rate limit burst is required when requests_per_second is set")
	}

	if config.Engine.MaxFiles < 0 || config.Engine.MaxErrors < 0 {
		return fmt.Errorf("engine limits must not be negative")
	}

	switch strings.ToLower(config.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.Logging.Level)
	}

	switch config.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", config.Logging.Format)
	}

	return nil
}
