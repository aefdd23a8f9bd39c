package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 从 .env / YAML 文件 / 环境变量读取，后者覆盖前者
type Config struct {
	Port string `yaml:"port"`

	DatabaseURL string `yaml:"database_url"`
	DBHost      string `yaml:"db_host"`
	DBUser      string `yaml:"db_user"`
	DBPassword  string `yaml:"db_password"`
	DBName      string `yaml:"db_name"`
	DBPort      string `yaml:"db_port"`

	RedisAddr string `yaml:"redis_addr"`
	RedisPwd  string `yaml:"redis_password"`

	WebOrigin  string        `yaml:"web_origin"`
	AdminToken string        `yaml:"admin_token"`
	TokenTTL   time.Duration `yaml:"token_ttl"`

	// ThrottleLimit requests per ThrottleWindow per client; 0 disables throttling.
	ThrottleLimit  int           `yaml:"throttle_limit"`
	ThrottleWindow time.Duration `yaml:"throttle_window"`

	Strategy string `yaml:"availability_strategy"`

	// ScanCron empty disables the scheduled shortage scan.
	ScanCron        string `yaml:"scan_cron"`
	ScanHorizonDays int    `yaml:"scan_horizon_days"`

	RabbitURL     string `yaml:"rabbitmq_url"`
	ShortageQueue string `yaml:"shortage_queue"`

	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

// LoadEnv 读取 .env（不存在时忽略）
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

func Default() Config {
	return Config{
		Port:            "3001",
		DBHost:          "127.0.0.1",
		DBUser:          "postgres",
		DBName:          "equipment",
		DBPort:          "5432",
		RedisAddr:       "127.0.0.1:6379",
		WebOrigin:       "http://localhost:5173",
		TokenTTL:        24 * time.Hour,
		ThrottleLimit:   120,
		ThrottleWindow:  time.Minute,
		Strategy:        "best_day",
		ScanHorizonDays: 14,
		ShortageQueue:   "equipment.shortages",
		LogLevel:        "info",
	}
}

// Load applies defaults, then the YAML file named by CONFIG_FILE, then the environment.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if cfg.ScanHorizonDays <= 0 {
		return Config{}, fmt.Errorf("scan horizon must be positive, got %d", cfg.ScanHorizonDays)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	str := func(k string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
		}
	}
	integer := func(k string, dst *int) error {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		*dst = n
		return nil
	}
	seconds := func(k string, dst *time.Duration) error {
		var n int
		if err := integer(k, &n); err != nil {
			return err
		}
		if n > 0 {
			*dst = time.Duration(n) * time.Second
		}
		return nil
	}

	str("PORT", &c.Port)
	str("DATABASE_URL", &c.DatabaseURL)
	str("DB_HOST", &c.DBHost)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("DB_PORT", &c.DBPort)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPwd)
	str("WEB_ORIGIN", &c.WebOrigin)
	str("ADMIN_TOKEN", &c.AdminToken)
	str("AVAILABILITY_STRATEGY", &c.Strategy)
	str("SCAN_CRON", &c.ScanCron)
	str("RABBITMQ_URL", &c.RabbitURL)
	str("SHORTAGE_QUEUE", &c.ShortageQueue)
	str("LOG_LEVEL", &c.LogLevel)
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		c.LogPretty = v == "true" || v == "1"
	}

	if err := seconds("TOKEN_TTL_SECONDS", &c.TokenTTL); err != nil {
		return err
	}
	if err := integer("THROTTLE_LIMIT", &c.ThrottleLimit); err != nil {
		return err
	}
	if err := seconds("THROTTLE_WINDOW_SECONDS", &c.ThrottleWindow); err != nil {
		return err
	}
	return integer("SCAN_HORIZON_DAYS", &c.ScanHorizonDays)
}

// DSN prefers DATABASE_URL, falling back to the discrete DB_* settings.
// The session runs in UTC so date columns compare against UTC-midnight
// parameters without shifting a day.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
