package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "COMMANDER_CONFIG"

type Config struct {
	Port           string   `yaml:"port"`
	DataDir        string   `yaml:"dataDir"`
	UploadDir      string   `yaml:"uploadDir"`
	DatabaseURL    string   `yaml:"databaseUrl"`
	AllowedOrigins []string `yaml:"allowedOrigins"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	TikTok     TikTokConfig     `yaml:"tiktok"`
	Slack      SlackConfig      `yaml:"slack"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type GeminiConfig struct {
	APIKey     string `yaml:"apiKey"`
	BaseURL    string `yaml:"baseUrl"`
	TextModel  string `yaml:"textModel"`
	ImageModel string `yaml:"imageModel"`
}

type TikTokConfig struct {
	ClientKey    string `yaml:"clientKey"`
	ClientSecret string `yaml:"clientSecret"`
	RedirectURI  string `yaml:"redirectUri"`
	APIBase      string `yaml:"apiBase"`
	AuthURL      string `yaml:"authUrl"`
}

type SlackConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channelId"`
}

type SimulationConfig struct {
	Interval time.Duration `yaml:"interval"`
	MaxStep  float64       `yaml:"maxStep"`
	Seed     int64         `yaml:"seed"`
}

// LoadConfig loads configuration from the environment.
// It first tries the .env file, then an optional YAML file named by COMMANDER_CONFIG,
// and finally applies environment variables on top.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Port:           "8080",
		DataDir:        "./data",
		UploadDir:      "./uploads",
		AllowedOrigins: []string{"http://localhost:5173"},
		Gemini: GeminiConfig{
			BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
			TextModel:  "gemini-2.5-flash",
			ImageModel: "gemini-2.5-flash-image",
		},
		TikTok: TikTokConfig{
			RedirectURI: "http://localhost:8080/auth/callback",
			APIBase:     "https://open.tiktokapis.com/v2",
			AuthURL:     "https://www.tiktok.com/v2/auth/authorize/",
		},
		Simulation: SimulationConfig{
			Interval: 200 * time.Millisecond,
			MaxStep:  15,
		},
	}
}

func readFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return &fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Port = getEnv("PORT", c.Port)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.UploadDir = getEnv("UPLOAD_DIR", c.UploadDir)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}

	c.Gemini.APIKey = getEnv("GEMINI_API_KEY", c.Gemini.APIKey)
	c.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", c.Gemini.BaseURL)
	c.Gemini.TextModel = getEnv("GEMINI_TEXT_MODEL", c.Gemini.TextModel)
	c.Gemini.ImageModel = getEnv("GEMINI_IMAGE_MODEL", c.Gemini.ImageModel)

	c.TikTok.ClientKey = getEnv("TIKTOK_CLIENT_KEY", c.TikTok.ClientKey)
	c.TikTok.ClientSecret = getEnv("TIKTOK_CLIENT_SECRET", c.TikTok.ClientSecret)
	c.TikTok.RedirectURI = getEnv("TIKTOK_REDIRECT_URI", c.TikTok.RedirectURI)
	c.TikTok.APIBase = getEnv("TIKTOK_API_BASE", c.TikTok.APIBase)
	c.TikTok.AuthURL = getEnv("TIKTOK_AUTH_URL", c.TikTok.AuthURL)

	c.Slack.Token = getEnv("SLACK_BOT_TOKEN", c.Slack.Token)
	c.Slack.ChannelID = getEnv("SLACK_CHANNEL_ID", c.Slack.ChannelID)

	if v := os.Getenv("SIMULATION_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Simulation.Interval = d
		} else {
			log.Printf("config: invalid SIMULATION_INTERVAL %q: %v", v, err)
		}
	}
	if v := os.Getenv("SIMULATION_MAX_STEP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Simulation.MaxStep = f
		} else {
			log.Printf("config: invalid SIMULATION_MAX_STEP %q: %v", v, err)
		}
	}
}

func mergeConfig(base, override *Config) *Config {
	if override.Port != "" {
		base.Port = override.Port
	}
	if override.DataDir != "" {
		base.DataDir = override.DataDir
	}
	if override.UploadDir != "" {
		base.UploadDir = override.UploadDir
	}
	if override.DatabaseURL != "" {
		base.DatabaseURL = override.DatabaseURL
	}
	if len(override.AllowedOrigins) > 0 {
		base.AllowedOrigins = override.AllowedOrigins
	}

	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.BaseURL != "" {
		base.Gemini.BaseURL = override.Gemini.BaseURL
	}
	if override.Gemini.TextModel != "" {
		base.Gemini.TextModel = override.Gemini.TextModel
	}
	if override.Gemini.ImageModel != "" {
		base.Gemini.ImageModel = override.Gemini.ImageModel
	}

	if override.TikTok.ClientKey != "" {
		base.TikTok.ClientKey = override.TikTok.ClientKey
	}
	if override.TikTok.ClientSecret != "" {
		base.TikTok.ClientSecret = override.TikTok.ClientSecret
	}
	if override.TikTok.RedirectURI != "" {
		base.TikTok.RedirectURI = override.TikTok.RedirectURI
	}
	if override.TikTok.APIBase != "" {
		base.TikTok.APIBase = override.TikTok.APIBase
	}
	if override.TikTok.AuthURL != "" {
		base.TikTok.AuthURL = override.TikTok.AuthURL
	}

	if override.Slack.Token != "" {
		base.Slack.Token = override.Slack.Token
	}
	if override.Slack.ChannelID != "" {
		base.Slack.ChannelID = override.Slack.ChannelID
	}

	if override.Simulation.Interval > 0 {
		base.Simulation.Interval = override.Simulation.Interval
	}
	if override.Simulation.MaxStep > 0 {
		base.Simulation.MaxStep = override.Simulation.MaxStep
	}
	if override.Simulation.Seed != 0 {
		base.Simulation.Seed = override.Simulation.Seed
	}

	return base
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SlackEnabled reports whether completion notifications should be sent
func (c *Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// TikTokOAuthEnabled reports whether the login redirect and code exchange can work
func (c *Config) TikTokOAuthEnabled() bool {
	return c.TikTok.ClientKey != "" && c.TikTok.ClientSecret != ""
}

func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.DatabaseURL == "" && c.DataDir == "" {
		return fmt.Errorf("either DATABASE_URL or DATA_DIR is required")
	}
	if c.Simulation.MaxStep <= 0 {
		return fmt.Errorf("SIMULATION_MAX_STEP must be positive")
	}
	if c.Slack.Token != "" && c.Slack.ChannelID == "" {
		return fmt.Errorf("SLACK_CHANNEL_ID is required when SLACK_BOT_TOKEN is set")
	}
	return nil
}
