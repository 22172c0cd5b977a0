package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/stevennight/ai-debug-tool/internal/models"
)

type Config struct {
	API         APIConfig
	Convert     ConvertConfig
	Server      ServerConfig
	Redis       RedisConfig
	CacheEnable bool `env:"CACHE_ENABLE"`
}

// APIConfig mirrors the persisted request settings of the debug tool.
type APIConfig struct {
	URL            string        `env:"API_URL"`
	Application    string        `env:"APPLICATION"`
	Key            string        `env:"API_KEY"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ResponseFormat string        `env:"RESPONSE_FORMAT" envDefault:"text"`
	Model          string        `env:"MODEL" envDefault:"qwen3-235b-a22b-instruct-2507"`
	Temperature    float64       `env:"TEMPERATURE" envDefault:"0.7"`
	UseStream      bool          `env:"USE_STREAM" envDefault:"true"`
}

type ConvertConfig struct {
	MaxDimensionPx int    `env:"PDF_MAX_DIMENSION_PX" envDefault:"2048"`
	DPI            int    `env:"PDF_DPI" envDefault:"200"`
	JPEGQuality    int    `env:"PDF_JPEG_QUALITY" envDefault:"85"`
	Rasterizer     string `env:"PDF_RASTERIZER" envDefault:"fitz"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"5m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"10"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestConfig snapshots the API settings into an immutable per-request
// configuration.
func (a APIConfig) RequestConfig() models.RequestConfig {
	return models.RequestConfig{
		APIURL:         a.URL,
		Application:    a.Application,
		APIKey:         a.Key,
		Model:          a.Model,
		Temperature:    a.Temperature,
		Timeout:        a.Timeout,
		ResponseFormat: models.ResponseFormat(a.ResponseFormat),
		Stream:         a.UseStream,
	}
}
