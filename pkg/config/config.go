package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	SentimentSourceCSV = "csv"
	SentimentSourceAPI = "api"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		CORS            bool          `yaml:"cors" default:"true"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		AnalyzeRPS      float64       `yaml:"analyze_rps" default:"0.2"`
		AnalyzeBurst    float64       `yaml:"analyze_burst" default:"2"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error fatal panic"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Data struct {
		TraderPaths    []string `yaml:"trader_paths" default:"[\"data/historical_data.csv\",\"historical_data.csv\"]" validate:"min=1"`
		SentimentPaths []string `yaml:"sentiment_paths" default:"[\"data/fear_greed_index.csv\",\"fear_greed_index.csv\"]"`
		ImageDir       string   `yaml:"image_dir" default:"images"`
		ChartDPI       int      `yaml:"chart_dpi" default:"300" validate:"gte=72,lte=600"`
		ChartWidthIn   float64  `yaml:"chart_width_in" default:"12" validate:"gt=0"`
		ChartHeightIn  float64  `yaml:"chart_height_in" default:"8" validate:"gt=0"`
	} `yaml:"data"`
	Sentiment struct {
		Source  string        `yaml:"source" default:"csv" validate:"oneof=csv api"`
		APIURL  string        `yaml:"api_url" default:"https://api.alternative.me/fng/"`
		Limit   int           `yaml:"limit" default:"0" validate:"gte=0"`
		Timeout time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"sentiment"`
	Analysis struct {
		Timeout time.Duration `yaml:"timeout" default:"2m"`
	} `yaml:"analysis"`
	Cache struct {
		Backend string        `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
		TTL     time.Duration `yaml:"ttl" default:"24h"`
		Prefix  string        `yaml:"prefix" default:"sentipnl"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"sentipnl"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"sentipnl.reports"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
}

var validate = validator.New()

// Default returns a config populated only from struct defaults.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		// defaults are static; a failure here is a programming error
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadOrDefault is LoadWithEnv, except a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	c, err := LoadWithEnv(path)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	c = Default()
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SENTIPNL_TRADER_PATH"); v != "" {
		c.Data.TraderPaths = strings.Split(v, ",")
	}
	if v := os.Getenv("SENTIPNL_SENTIMENT_PATH"); v != "" {
		c.Data.SentimentPaths = strings.Split(v, ",")
	}
	if v := os.Getenv("SENTIPNL_SENTIMENT_SOURCE"); v != "" {
		c.Sentiment.Source = v
	}
	if v := os.Getenv("SENTIPNL_IMAGE_DIR"); v != "" {
		c.Data.ImageDir = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Sentiment.Source == SentimentSourceCSV && len(c.Data.SentimentPaths) == 0 {
		return fmt.Errorf("data.sentiment_paths cannot be empty when sentiment.source is 'csv'")
	}
	if c.Sentiment.Source == SentimentSourceAPI && c.Sentiment.APIURL == "" {
		return fmt.Errorf("sentiment.api_url is required when sentiment.source is 'api'")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Cache.Backend == CacheRedis && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}
	return nil
}
