package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Prefetch PrefetchConfig `mapstructure:"prefetch"`
	History  HistoryConfig  `mapstructure:"history"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Database DatabaseConfig `mapstructure:"database"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// HTTPConfig controls the shared outbound client used for museum APIs
// and image downloads.
type HTTPConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type PrefetchConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Interval time.Duration `mapstructure:"interval"`
}

type HistoryConfig struct {
	MaxLen int `mapstructure:"max_len"`
	TrimBy int `mapstructure:"trim_by"`
}

type SourcesConfig struct {
	Met SourceToggle `mapstructure:"met"`
	AIC SourceToggle `mapstructure:"aic"`
	CMA SourceToggle `mapstructure:"cma"`
	NGA SourceToggle `mapstructure:"nga"`
}

type SourceToggle struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN builds the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path
}

type NotifyConfig struct {
	Buffer int `mapstructure:"buffer"`
}

// Load reads configuration from file, environment, and defaults.
// Parameters:
//   - configPath: explicit config file path, or empty for the search path.
//
// Returns:
//   - *Config: resolved configuration.
//   - error: non-nil if the config file exists but cannot be parsed.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults apply; a malformed file is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8491)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	v.SetDefault("http.user_agent", "ArtGlass/0.1 (Desktop Art Viewer)")
	v.SetDefault("http.timeout", 30*time.Second)

	v.SetDefault("prefetch.capacity", 5)
	v.SetDefault("prefetch.interval", 2*time.Second)

	v.SetDefault("history.max_len", 50)
	v.SetDefault("history.trim_by", 25)

	v.SetDefault("sources.met.enabled", true)
	v.SetDefault("sources.aic.enabled", true)
	v.SetDefault("sources.cma.enabled", true)
	v.SetDefault("sources.nga.enabled", true)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/artglass.db")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("notify.buffer", 4)
}
