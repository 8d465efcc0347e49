package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"meetup/internal/structures"
	"path/filepath"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.redis.prefix", "meetup:")

	v.BindEnv("logger.level", "MEETUP_LOG_LEVEL")
	v.BindEnv("storage.driver", "MEETUP_STORAGE_DRIVER")
	v.BindEnv("storage.filePath", "MEETUP_STORAGE_FILE")
	v.BindEnv("storage.sqlitePath", "MEETUP_STORAGE_SQLITE")
	v.BindEnv("storage.redis.password", "MEETUP_REDIS_PASSWORD")
	v.BindEnv("groups.databasePath", "MEETUP_GROUPS_DB")
	v.BindEnv("cache.enabled", "MEETUP_CACHE_ENABLED")
	v.BindEnv("cache.size", "MEETUP_CACHE_SIZE")

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

	conf.AppName = "MeetupDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
