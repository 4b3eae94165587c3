package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"prod"`
	PostgreSQL PostgreSQL `yaml:"postgresql"`
	Redis      Redis      `yaml:"redis"`
	HTTPServer HTTPServer `yaml:"http_server"`
	JWT        JWT        `yaml:"jwt"`
	Scan       Scan       `yaml:"scan"`
	Retailer   Retailer   `yaml:"retailer"`
}

type PostgreSQL struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-required:"true"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-required:"true"`
	Username string `yaml:"username" env:"POSTGRES_USER" env-required:"true"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-required:"true"`
	Database string `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
}

type Redis struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS" env-required:"true"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	ProgressTTL time.Duration `yaml:"progress_ttl" env-default:"24h"`
}

type HTTPServer struct {
	Address          string        `yaml:"address" env:"HTTP_ADDRESS" env-required:"true"`
	Timeout          time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout      time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins   []string      `yaml:"allowed_origins" env-default:"*"`
	AllowCredentials bool          `yaml:"allow_credentials"`
	AllowedMethods   []string      `yaml:"allowed_methods" env-default:"*"`
	AllowedHeaders   []string      `yaml:"allowed_headers" env-default:"*"`
}

type JWT struct {
	Secret         string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env-default:"15m"`
}

type Scan struct {
	PaceInterval          time.Duration `yaml:"pace_interval" env-default:"2s"`
	Concurrency           int           `yaml:"concurrency" env-default:"1"`
	PageSize              int           `yaml:"page_size" env-default:"10"`
	MinItems              int           `yaml:"min_items" env-default:"15"`
	MaxItems              int           `yaml:"max_items" env-default:"40"`
	ClearanceProbability  float64       `yaml:"clearance_probability" env-default:"0.35"`
	SuppressedProbability float64       `yaml:"suppressed_probability" env-default:"0.05"`
	Seed                  uint64        `yaml:"seed"`
	// Source selects the listing source: mock or http.
	Source     string        `yaml:"source" env:"SCAN_SOURCE" env-default:"mock"`
	RunTimeout time.Duration `yaml:"run_timeout" env-default:"10m"`
}

type Retailer struct {
	BaseURL    string        `yaml:"base_url" env:"RETAILER_BASE_URL"`
	Timeout    time.Duration `yaml:"timeout" env-default:"15s"`
	UserAgent  string        `yaml:"user_agent" env-default:"dealscan/1.0"`
	RetryCount int           `yaml:"retry_count" env-default:"2"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadByPath(configPath)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("config reading error: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
