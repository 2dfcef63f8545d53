// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration
// settings, such as URLCHECK_READ_TIMEOUT.
const EnvPrefix = "URLCHECK"

// NewViper returns a new viper instance with the defaults set and environment
// variable lookup enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	def := Defaults()
	v.SetDefault(KeyQueueCapacity, def.QueueCapacity)
	v.SetDefault(KeyConnectTimeout, def.ConnectTimeout)
	v.SetDefault(KeyReadTimeout, def.ReadTimeout)
	v.SetDefault(KeyUserAgent, def.UserAgent)
	v.SetDefault(KeyResolver, "")
	v.SetDefault(KeyNetns, "")
	v.SetDefault(KeyContainer, "")
	v.SetDefault(KeyRate, 0.0)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyProgress, false)
	v.SetDefault(KeyDebug, false)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional YAML configuration file (if path isn't empty),
// unmarshals the settings of the passed viper instance and finally validates
// them.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
