// Package config loads client-side configuration for the epirc CLI: the
// mG table path, the worker pool size, and the log level. This is purely
// ambient plumbing — it carries no protocol state (spec §6.3, only the mG
// table file is persisted state).
package config

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultMgPath    = "mG.bin"
	defaultWorkers   = 0 // 0 means workerpool.Default()
	defaultLogLevel  = "info"
	envPrefix        = "EPIR"
	defaultMmaxLimit = 1 << 24
)

// Config holds the settings epirc needs to drive the core.
type Config struct {
	MgPath   string `mapstructure:"mg_path"`
	Workers  int    `mapstructure:"workers"`
	LogLevel string `mapstructure:"log_level"`
	MmaxCap  int    `mapstructure:"mmax_cap"`
}

// Load reads configuration from command-line flags registered on fs,
// environment variables (EPIR_MG_PATH, EPIR_WORKERS, EPIR_LOG_LEVEL), and
// a config file if one is present, in that order of precedence.
func Load(fs *flag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("mg_path", defaultMgPath)
	v.SetDefault("workers", defaultWorkers)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("mmax_cap", defaultMmaxLimit)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile := os.Getenv(envPrefix + "_CONFIG"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", cfgFile, err)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("config: binding flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}
