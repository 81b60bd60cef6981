package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
)

// envPrefix prefixes every environment variable read by the CLI.
const envPrefix = "PAGETREE"

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the config file in use, if any.
	ConfigFile string

	// Catalog storage and live registry
	Store               string
	StoreKey            string
	Registry            string
	RegistryToken       string
	RegistryTokenHeader string
	SlotFallback        bool
	RegionFallback      bool
	AllowEmptyDiscovery bool
	DiscoveryTimeout    time.Duration

	// HTTP adapter
	Listen           string
	Layout           string
	Regions          map[string]string
	APIKey           string
	CORSOrigins      []string
	AutoSyncInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. PAGETREE_* environment variables
//  3. .env and .env.local
//  4. Config file (configFile, else ~/.pagetree.yaml or ./.pagetree.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".pagetree")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot read config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Store:               v.GetString("store"),
		StoreKey:            v.GetString("store_key"),
		Registry:            v.GetString("registry"),
		RegistryToken:       v.GetString("registry_token"),
		RegistryTokenHeader: v.GetString("registry_token_header"),
		SlotFallback:        v.GetBool("slot_fallback"),
		RegionFallback:      v.GetBool("region_fallback"),
		AllowEmptyDiscovery: v.GetBool("allow_empty_discovery"),
		DiscoveryTimeout:    v.GetDuration("discovery_timeout"),

		Listen:           v.GetString("listen"),
		Layout:           v.GetString("layout"),
		Regions:          v.GetStringMapString("regions"),
		APIKey:           v.GetString("api_key"),
		CORSOrigins:      v.GetStringSlice("cors_origins"),
		AutoSyncInterval: v.GetDuration("auto_sync_interval"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store", constants.DefaultStorePath)
	v.SetDefault("store_key", constants.CatalogKey)
	v.SetDefault("discovery_timeout", constants.DiscoveryTimeout)
	v.SetDefault("listen", constants.DefaultListenAddr)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.DiscoveryTimeout < 0 {
		return errors.NewValidationError("discovery_timeout", c.DiscoveryTimeout, "must not be negative")
	}
	if c.AutoSyncInterval < 0 {
		return errors.NewValidationError("auto_sync_interval", c.AutoSyncInterval, "must not be negative")
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so that flag values take
// precedence over the config file and the environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env.local and .env. godotenv never overrides a
// variable that is already set: the environment beats .env.local, which
// beats .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
