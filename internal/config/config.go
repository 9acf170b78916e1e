package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where Load looks when no -config flag is given.
const DefaultConfigPath = "config.yml"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageLocal      = "local"
	StorageS3         = "s3"
	StorageCloudinary = "cloudinary"
)

// AppConfig is the full runtime configuration, loaded once at startup and
// passed down explicitly. YAML values come first, environment variables
// override them so the app keeps working in env-only deployments.
type AppConfig struct {
	Port    int    `yaml:"port" env:"PORT"`
	Env     string `yaml:"env" env:"APP_ENV"`
	BaseURL string `yaml:"base_url" env:"BASE_URL"`

	AllowedOrigins []string `yaml:"allowed_origins"`

	Paths   PathsConfig   `yaml:"paths"`
	Storage StorageConfig `yaml:"storage"`
	AI      AIConfig      `yaml:"ai"`

	Hosted HostedConfig `yaml:"-"`
}

// PathsConfig holds the runtime directories. Relative paths resolve against
// the executable directory, see ResolveRuntimePath.
type PathsConfig struct {
	Data    string `yaml:"data" env:"DATA_DIR"`
	Uploads string `yaml:"uploads" env:"UPLOADS_DIR"`
	Backups string `yaml:"backups" env:"BACKUPS_DIR"`
	Logs    string `yaml:"logs" env:"LOGS_DIR"`
}

type StorageConfig struct {
	Type       string           `yaml:"type" env:"STORAGE_TYPE"`
	S3         S3Config         `yaml:"s3"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" env:"AWS_S3_BUCKET_NAME"`
	Region          string `yaml:"region" env:"AWS_S3_REGION"`
	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	BaseURL         string `yaml:"base_url" env:"AWS_S3_BASE_URL"`
	Endpoint        string `yaml:"endpoint" env:"AWS_S3_ENDPOINT"`
}

type CloudinaryConfig struct {
	CloudName    string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey       string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	APISecret    string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
	UploadPreset string `yaml:"upload_preset" env:"CLOUDINARY_UPLOAD_PRESET"`
}

// AIProvider describes one upstream model provider. Type selects the SDK
// wiring: "openai", "openai-compatible" or "anthropic".
type AIProvider struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

type AIConfig struct {
	Providers []AIProvider `yaml:"providers"`

	// Env fallback for deployments without a config file.
	EnvType   string `yaml:"-" env:"AI_PROVIDER_TYPE"`
	EnvAPIKey string `yaml:"-" env:"AI_API_KEY"`
	EnvModel  string `yaml:"-" env:"AI_MODEL"`
}

// HostedConfig detects managed hosting platforms where local-disk uploads
// do not survive a redeploy.
type HostedConfig struct {
	Vercel      string `env:"VERCEL"`
	Netlify     string `env:"NETLIFY"`
	RailwayEnv  string `env:"RAILWAY_ENVIRONMENT"`
	NodeEnvHint string `env:"NODE_ENV"`
}

// Platform names the detected hosting platform, or "" when none matched.
func (h HostedConfig) Platform() string {
	switch {
	case h.Vercel != "":
		return "vercel"
	case h.Netlify != "":
		return "netlify"
	case h.RailwayEnv != "":
		return "railway"
	}
	return ""
}

// Load reads the YAML config at path (missing file means defaults only),
// applies environment overrides and validates the result.
func Load(path string) (*AppConfig, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// env-only deployment
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *AppConfig {
	return &AppConfig{
		Port:    8080,
		Env:     EnvDevelopment,
		BaseURL: "",
		Paths: PathsConfig{
			Data:    "data",
			Uploads: "public/uploads",
			Backups: "backups",
			Logs:    "logs",
		},
		Storage: StorageConfig{Type: StorageLocal},
	}
}

func (c *AppConfig) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		if strings.EqualFold(c.Hosted.NodeEnvHint, "production") {
			c.Env = EnvProduction
		} else {
			c.Env = EnvDevelopment
		}
	}
	c.Storage.Type = strings.ToLower(strings.TrimSpace(c.Storage.Type))
	if c.Storage.Type == "" {
		c.Storage.Type = StorageLocal
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")

	if len(c.AI.Providers) == 0 && c.AI.EnvAPIKey != "" {
		typ := c.AI.EnvType
		if typ == "" {
			typ = "openai"
		}
		c.AI.Providers = []AIProvider{{
			Name:   "env",
			Type:   typ,
			APIKey: c.AI.EnvAPIKey,
			Model:  c.AI.EnvModel,
		}}
	}
}

func (c *AppConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	switch c.Storage.Type {
	case StorageLocal, StorageS3, StorageCloudinary:
	default:
		return fmt.Errorf("config: unknown storage type %q", c.Storage.Type)
	}
	return nil
}

func (c *AppConfig) IsProd() bool { return c.Env == EnvProduction }

// DataFile is the path of the JSON document store.
func (c *AppConfig) DataFile() string {
	return filepath.Join(ResolveRuntimePath(c.Paths.Data, "data"), "db.json")
}

func (c *AppConfig) UploadsDir() string { return ResolveRuntimePath(c.Paths.Uploads, "public/uploads") }
func (c *AppConfig) BackupsDir() string { return ResolveRuntimePath(c.Paths.Backups, "backups") }
func (c *AppConfig) LogsDir() string    { return ResolveRuntimePath(c.Paths.Logs, "logs") }
