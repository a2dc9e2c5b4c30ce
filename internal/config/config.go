package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	Gemini   Gemini   `mapstructure:"gemini"`
	YouTube  YouTube  `mapstructure:"youtube"`
	Images   Images   `mapstructure:"images"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	DataDir    string `mapstructure:"data_dir"`
	ConfigFile string `mapstructure:"config_file"`
}

// Gemini holds the generative model configuration
type Gemini struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	Temperature float32 `mapstructure:"temperature"`
}

// YouTube holds video metadata/transcript acquisition configuration
type YouTube struct {
	APIKey         string `mapstructure:"api_key"`         // YouTube Data API v3 key, optional
	TranscriptLang string `mapstructure:"transcript_lang"` // Preferred caption language
	UserAgent      string `mapstructure:"user_agent"`      // Browser-like UA for page fetches
	Timeout        string `mapstructure:"timeout"`         // Per-strategy timeout
}

// Images holds illustrative image URL configuration
type Images struct {
	Endpoint     string `mapstructure:"endpoint"`       // Image generation URL template base
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
	StylePrefix  string `mapstructure:"style_prefix"`   // Prepended to every image prompt
	MaxPromptLen int    `mapstructure:"max_prompt_len"` // Prompt truncation bound for URL length
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds CORS middleware configuration
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Database holds record store configuration
type Database struct {
	Path string `mapstructure:"path"` // SQLite database file location
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".tubepost")
		viper.SetConfigType("yaml")
	}

	// Set defaults
	setDefaults()

	// Bind environment variables
	bindEnvironmentVariables()

	// Enable automatic environment variable reading
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into struct
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".tubepost-data")

	// Gemini defaults
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.temperature", 0.7)

	// YouTube defaults
	viper.SetDefault("youtube.transcript_lang", "en")
	viper.SetDefault("youtube.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	viper.SetDefault("youtube.timeout", "15s")

	// Images defaults
	viper.SetDefault("images.endpoint", "https://image.pollinations.ai/prompt/")
	viper.SetDefault("images.width", 1600)
	viper.SetDefault("images.height", 900)
	viper.SetDefault("images.style_prefix", "cinematic-tech-blog-illustration")
	viper.SetDefault("images.max_prompt_len", 200)

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	// Database defaults
	viper.SetDefault("database.path", ".tubepost-data/tubepost.db")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	// YouTube Data API key - distinct from the Gemini credential
	bindEnvKeys("youtube.api_key", []string{
		"YOUTUBE_API_KEY",
		"YT_API_KEY",
	})

	// General settings
	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"TUBEPOST_DEBUG",
	})

	bindEnvKeys("database.path", []string{
		"TUBEPOST_DB_PATH",
	})

	bindEnvKeys("server.port", []string{
		"PORT",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig ensures configuration values are well-formed.
// The Gemini credential is deliberately not required here: its absence is a
// generation-step failure, not a reason to refuse serving read endpoints.
func validateConfig(config *Config) error {
	durations := map[string]string{
		"gemini.timeout":  config.Gemini.Timeout,
		"youtube.timeout": config.YouTube.Timeout,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	if config.Images.Width <= 0 || config.Images.Height <= 0 {
		return fmt.Errorf("images.width and images.height must be positive")
	}

	return nil
}

// Convenience getters for commonly used configuration values
func GetApp() App           { return Get().App }
func GetGemini() Gemini     { return Get().Gemini }
func GetYouTube() YouTube   { return Get().YouTube }
func GetImages() Images     { return Get().Images }
func GetServer() Server     { return Get().Server }
func GetDatabase() Database { return Get().Database }

// Specific convenience getters for frequently accessed values
func GetGeminiAPIKey() string  { return Get().Gemini.APIKey }
func GetGeminiModel() string   { return Get().Gemini.Model }
func GetYouTubeAPIKey() string { return Get().YouTube.APIKey }
func IsDebugMode() bool        { return Get().App.Debug }

// GeminiTimeout returns the parsed generation call timeout.
func GeminiTimeout() time.Duration {
	return parseDurationOr(Get().Gemini.Timeout, 60*time.Second)
}

// YouTubeTimeout returns the parsed per-strategy acquisition timeout.
func YouTubeTimeout() time.Duration {
	return parseDurationOr(Get().YouTube.Timeout, 15*time.Second)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
