package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration accepts both Go duration strings ("10s") and bare seconds.
type Duration time.Duration

// UnmarshalText lets viper decode values such as "30s", "5m" or "10".
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}
	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	return fmt.Errorf("invalid duration value: %s", raw)
}

func (d Duration) DurationValue() time.Duration { return time.Duration(d) }

// Backend names accepted in Store.Backend.
const (
	BackendRedis     = "redis"
	BackendBigCache  = "bigcache"
	BackendRistretto = "ristretto"
)

// StoreConfig selects and addresses the key-value store.
type StoreConfig struct {
	Backend  string   `mapstructure:"Backend"`
	Host     string   `mapstructure:"Host"`
	Port     int      `mapstructure:"Port"`
	Timeout  Duration `mapstructure:"Timeout"`
	Password string   `mapstructure:"Password"`
	DB       int      `mapstructure:"DB"`
}

// MemoryConfig sizes the in-process backends.
type MemoryConfig struct {
	LifeWindow   Duration `mapstructure:"LifeWindow"`
	MaxEntrySize int      `mapstructure:"MaxEntrySize"`
	MaxSizeMB    int      `mapstructure:"MaxSizeMB"`
	MaxCost      int64    `mapstructure:"MaxCost"`
}

// Config is resolved once at startup and never reloaded.
type Config struct {
	Store  StoreConfig  `mapstructure:"Store"`
	Memory MemoryConfig `mapstructure:"Memory"`

	KeyPrefix     string `mapstructure:"KeyPrefix"`
	SilentUnknown bool   `mapstructure:"SilentUnknown"`

	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
}

// Addr returns host:port of the redis backend.
func (s StoreConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
