package config

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/TeddyRux/marathon/util"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// MatcherConfig configures resource matching defaults.
type MatcherConfig struct {
	// DefaultAcceptedRoles applies to pods that declare no accepted
	// resource roles of their own.
	DefaultAcceptedRoles []string `mapstructure:"default_accepted_roles"`
}

// EnvironmentConfig configures the synthetic task environment.
type EnvironmentConfig struct {
	// Prefix is prepended to every port-derived variable name.
	Prefix string `mapstructure:"prefix"`
}

// CacheConfig configures the placement result cache.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Matcher     MatcherConfig     `mapstructure:"matcher"`
	Environment EnvironmentConfig `mapstructure:"environment"`
	Cache       CacheConfig       `mapstructure:"cache"`
}

// InitConfig loads the TOML configuration, with MARATHON_-prefixed
// environment variables overriding file values. Missing files fall back
// to defaults; a present but unreadable file is an error.
func InitConfig(configName string, configPath string) (Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "marathon_config"
	}
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.SetEnvPrefix("MARATHON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, err
		}
		util.GetLogger().Warn("config file not found, using defaults", slog.String("config_name", configName))
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if len(cfg.Matcher.DefaultAcceptedRoles) == 0 {
		cfg.Matcher.DefaultAcceptedRoles = []string{"*"}
	}
	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server:      ServerConfig{Host: ":8080"},
		Logging:     LoggingConfig{Level: "info", Console: true},
		Matcher:     MatcherConfig{DefaultAcceptedRoles: []string{"*"}},
		Environment: EnvironmentConfig{Prefix: ""},
		Cache:       CacheConfig{TTLSeconds: 300},
	}
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(1)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
