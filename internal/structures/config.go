package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"required|in:file,redis"`
	FilePath    string `yaml:"filePath"`
	Compression string `yaml:"compression" validate:"in:none,zstd"`
	RedisURL    string `yaml:"redisUrl"`
	RedisKey    string `yaml:"redisKey"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AuthConfig struct {
	Secret     string `yaml:"secret" validate:"required|minLen:16"`
	CookieName string `yaml:"cookieName"`
}

type GateConfig struct {
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"passwordHash"`
}

type DraftConfig struct {
	IdleTTL       time.Duration `yaml:"idleTTL"`
	DirtyIdleTTL  time.Duration `yaml:"dirtyIdleTTL"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Logger    LoggerConfig  `yaml:"logger"`
	Auth      AuthConfig    `yaml:"auth"`
	Gate      GateConfig    `yaml:"gate"`
	Drafts    DraftConfig   `yaml:"drafts"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
