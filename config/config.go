// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package config

import (
	"time"

	"github.com/siemens/urlcheck/checker"
	"github.com/siemens/urlcheck/probe"
)

// Config represents the configuration of a single urlcheck run, as assembled
// from defaults, an optional YAML configuration file, URLCHECK_* environment
// variables, and CLI flags (in increasing order of precedence).
type Config struct {
	QueueCapacity  int           `mapstructure:"queue-capacity"`  // capacity of the URL hand-off queue
	ConnectTimeout time.Duration `mapstructure:"connect-timeout"` // per-probe connect timeout
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`    // per-probe response timeout
	UserAgent      string        `mapstructure:"user-agent"`
	Resolver       string        `mapstructure:"dns"`          // optional DNS server host:port
	Netns          string        `mapstructure:"netns"`        // optional network namespace path
	Container      string        `mapstructure:"container"`    // optional container name or ID
	Rate           float64       `mapstructure:"rate"`         // probes per second, 0 is unlimited
	MetricsFile    string        `mapstructure:"metrics-file"` // optional Prometheus textfile
	Progress       bool          `mapstructure:"progress"`
	Debug          bool          `mapstructure:"debug"`
}

// Keys of the individual configuration settings, as also used for the CLI
// flags and (upper-cased and with underscores) environment variables.
const (
	KeyQueueCapacity  = "queue-capacity"
	KeyConnectTimeout = "connect-timeout"
	KeyReadTimeout    = "read-timeout"
	KeyUserAgent      = "user-agent"
	KeyResolver       = "dns"
	KeyNetns          = "netns"
	KeyContainer      = "container"
	KeyRate           = "rate"
	KeyMetricsFile    = "metrics-file"
	KeyProgress       = "progress"
	KeyDebug          = "debug"
)

// DefaultUserAgent is sent with each probe unless configured otherwise.
const DefaultUserAgent = "urlcheck/1.0"

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		QueueCapacity:  checker.DefaultQueueCapacity,
		ConnectTimeout: probe.DefaultConnectTimeout,
		ReadTimeout:    probe.DefaultReadTimeout,
		UserAgent:      DefaultUserAgent,
	}
}
