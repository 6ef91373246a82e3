package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConf     `yaml:"redis"`
	Auth    AuthConfig    `yaml:"auth"`
	Imaging ImagingConfig `yaml:"imaging"`
	Catalog CatalogConfig `yaml:"catalog"`
}

type HTTPConfig struct {
	Host    string        `yaml:"host"`
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"30s"`
	// BodyLimit ограничивает размер multipart-загрузки, например "40M"
	BodyLimit string `yaml:"body_limit" env-default:"40M"`
}

type StorageConfig struct {
	Type    string        `yaml:"type" env:"STORAGE_TYPE" env-default:"sqlite"`
	DSN     string        `yaml:"dsn" env:"STORAGE_DSN" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env-default:"0"`
}

type AuthConfig struct {
	AdminEmail        string        `yaml:"admin_email" env:"ADMIN_EMAIL" env-required:"true"`
	AdminPasswordHash string        `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
	Secret            string        `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
	CookieSecret      string        `yaml:"cookie_secret" env:"COOKIE_SECRET" env-required:"true"`
	SessionTTL        time.Duration `yaml:"session_ttl" env-default:"12h"`
	SecureCookie      bool          `yaml:"secure_cookie" env-default:"false"`
}

type ImagingConfig struct {
	TargetSizeKB float64 `yaml:"target_size_kb" env-default:"700"`
	MaxAttempts  int     `yaml:"max_attempts" env-default:"5"`
	MaxImages    int     `yaml:"max_images" env-default:"4"`
	StartQuality float64 `yaml:"start_quality" env-default:"0.85"`
	QualityStep  float64 `yaml:"quality_step" env-default:"0.15"`
	MinQuality   float64 `yaml:"min_quality" env-default:"0.30"`
}

type CatalogConfig struct {
	Locale   string        `yaml:"locale" env-default:"es"`
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
