package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"pingerconf/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("auth.cookieName", "session")

	_ = v.BindEnv("logger.level", "PINGERCONF_LOG_LEVEL")
	_ = v.BindEnv("gate.password", "SITE_PASSWORD")
	_ = v.BindEnv("auth.secret", "PINGERCONF_AUTH_SECRET")
	_ = v.BindEnv("storage.driver", "PINGERCONF_STORAGE_DRIVER")
	_ = v.BindEnv("storage.redisUrl", "PINGERCONF_REDIS_URL")
	_ = v.BindEnv("cache.enabled", "PINGERCONF_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "PingerConfig"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
