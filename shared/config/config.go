package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel   string `yaml:"log_level"`
	LogJSON    bool   `yaml:"log_json"`
	APIAddr    string `yaml:"api_addr"`    // backend listen address
	WebAddr    string `yaml:"web_addr"`    // frontend listen address
	APIBaseURL string `yaml:"api_base_url"` // how the frontend reaches the backend

	// Origins allowed to call the API with credentials, i.e. where the
	// frontend is served from.
	CorsAllowedOrigins []string `yaml:"cors_allowed_origins"`

	PostsPerPage  int           `yaml:"posts_per_page"`
	JwtTTL        time.Duration `yaml:"jwt_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`

	TitleMaxLen   int `yaml:"title_max_len"`
	ContentMaxLen int `yaml:"content_max_len"`
	CommentMaxLen int `yaml:"comment_max_len"`

	MaxImageSizeBytes     int64    `yaml:"max_image_size_bytes"`
	AllowedImageMimeTypes []string `yaml:"allowed_image_mime_types"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
	Cos    Cos    `yaml:"cos"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// Cos holds the object-storage credentials. BaseURL overrides the default
// public bucket URL (CDN or custom domain).
type Cos struct {
	SecretID   string `yaml:"secret_id"`
	SecretKey  string `yaml:"secret_key"`
	BucketName string `yaml:"bucket_name"`
	AppID      string `yaml:"app_id"`
	Region     string `yaml:"region"`
	BaseURL    string `yaml:"base_url"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
