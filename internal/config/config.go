package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is constructed once at
// startup and passed explicitly to the components that need it; nothing else
// reads the environment.
type Config struct {
	GitHub struct {
		Token    string `yaml:"token"`
		Username string `yaml:"username"`
		Repo     string `yaml:"repo"`
		FilePath string `yaml:"file_path"`
	} `yaml:"github"`
	Social struct {
		TwitterHandle string `yaml:"twitter_handle"`
	} `yaml:"social"`
	Newsletter struct {
		TemplatePath string `yaml:"template_path"`
		OutputDir    string `yaml:"output_dir"`
	} `yaml:"newsletter"`
	DataSource struct {
		CoinGeckoURL string `yaml:"coingecko_url"`
		SentimentURL string `yaml:"sentiment_url"`
	} `yaml:"data_source"`
	Schedule struct {
		// WeeklyCron empty means run once and exit.
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		cfg.GitHub.Username = v
	}
	if v := os.Getenv("GITHUB_REPO"); v != "" {
		cfg.GitHub.Repo = v
	}
	if v := os.Getenv("TWITTER_HANDLE"); v != "" {
		cfg.Social.TwitterHandle = v
	}
	if v := os.Getenv("TEMPLATE_PATH"); v != "" {
		cfg.Newsletter.TemplatePath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Newsletter.OutputDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.GitHub.Repo == "" {
		cfg.GitHub.Repo = "Crypto_Weekly_Newsletter"
	}
	if cfg.GitHub.FilePath == "" {
		cfg.GitHub.FilePath = "index.html"
	}
	if cfg.Social.TwitterHandle == "" {
		cfg.Social.TwitterHandle = "sanjeev_kumar_c"
	}
	if cfg.Newsletter.TemplatePath == "" {
		cfg.Newsletter.TemplatePath = "templates/newsletter_template.html"
	}
	if cfg.Newsletter.OutputDir == "" {
		cfg.Newsletter.OutputDir = "."
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crypto_intel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set. GitHub credentials are
// deliberately not required: without them the publish step is skipped.
func (c *Config) Validate() error {
	if c.GitHub.Repo == "" {
		return fmt.Errorf("github.repo is required")
	}
	if c.GitHub.FilePath == "" {
		return fmt.Errorf("github.file_path is required")
	}
	if c.Newsletter.TemplatePath == "" {
		return fmt.Errorf("newsletter.template_path is required")
	}
	if c.Newsletter.OutputDir == "" {
		return fmt.Errorf("newsletter.output_dir is required")
	}
	return nil
}
