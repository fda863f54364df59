package nokogiri

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed default_config.toml
var defaultConfigTOML []byte

// ServerConfig is the `[server]` section.
type ServerConfig struct {
	Host string `toml:"host"`
	Port uint16 `toml:"port"`
}

// SecurityConfig is the `[security]` section.
type SecurityConfig struct {
	SecretKey         string   `toml:"secret_key"`
	BlockNonGlobalIPs bool     `toml:"block_non_global_ips"`
	AllowedPrivateIPs []string `toml:"allowed_private_ips"`
}

// GeneralConfig is the `[general]` section.
type GeneralConfig struct {
	ResponseTimeout    uint64 `toml:"response_timeout"`  // ms
	OperationTimeout   uint64 `toml:"operation_timeout"` // ms
	MaxRedirectHops    uint   `toml:"max_redirect_hops"`
	ContentLengthLimit string `toml:"content_length_limit"`
	DefaultLang        string `toml:"default_lang"`
	IgnoreRobotsTxt    bool   `toml:"ignore_robots_txt"`
}

// PluginsConfig is the `[plugins]` section.
type PluginsConfig struct {
	Disabled []string `toml:"disabled"`
}

// CacheConfig is the `[cache]` section.
type CacheConfig struct {
	Enabled  bool    `toml:"enabled"`
	Host     string  `toml:"host"`
	Port     uint16  `toml:"port"`
	Prefix   *string `toml:"prefix"`
	DB       *int    `toml:"db"`
	Username *string `toml:"username"`
	Password *string `toml:"password"`
}

// SentryConfig is the `[sentry]` section. Sentry forwarding itself is an
// external collaborator (see spec §1 scope) — only the DSN presence/absence
// is surfaced here.
type SentryConfig struct {
	DSN *string `toml:"dsn"`
}

// DebugConfig is the `[debug]` section.
type DebugConfig struct {
	LogLevel *string `toml:"log_level"`
}

// Config is the top-level, fully-typed `config.toml` document.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Security SecurityConfig `toml:"security"`
	General  GeneralConfig  `toml:"general"`
	Plugins  PluginsConfig  `toml:"plugins"`
	Cache    CacheConfig    `toml:"cache"`
	Sentry   SentryConfig   `toml:"sentry"`
	Debug    DebugConfig    `toml:"debug"`
}

const configPath = "./config.toml"

// LoadConfig reads config.toml relative to the working directory. If it does
// not exist, the embedded default is written out and the function returns
// ErrConfigBootstrapped so callers can exit(0) and let the operator review it,
// mirroring original_source/src/config.rs's AppConfig::new.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, defaultConfigTOML, 0o644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		return nil, ErrConfigBootstrapped
	}

	var cfg Config
	if err := toml.Unmarshal(defaultConfigTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded default config: %w", err)
	}
	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config.toml: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}
	return &cfg, nil
}

// ErrConfigBootstrapped is returned by LoadConfig when no config.toml existed
// and the embedded default was just written in its place.
var errConfigBootstrappedMsg = "config.toml created from embedded default; please review it before running again"

type configBootstrappedError struct{}

func (configBootstrappedError) Error() string { return errConfigBootstrappedMsg }

var ErrConfigBootstrapped error = configBootstrappedError{}

var globalConfig *Config

// SetGlobalConfig installs cfg as the process-lifetime configuration consulted
// by the dispatcher, the general handler, the façade and the logger. It must
// be called once, before any of those is first used.
func SetGlobalConfig(cfg *Config) { globalConfig = cfg }

func config() *Config {
	if globalConfig == nil {
		panic("nokogiri: SetGlobalConfig must be called before use")
	}
	return globalConfig
}
