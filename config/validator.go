// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"net"
	"time"
)

// Validate checks if the configuration is valid.
func Validate(cfg *Config) error {
	if cfg.QueueCapacity < 1 {
		return fmt.Errorf("queue capacity must be at least 1, got %d", cfg.QueueCapacity)
	}
	if cfg.ConnectTimeout < time.Millisecond {
		return fmt.Errorf("connect timeout too short: %s (minimum 1ms)", cfg.ConnectTimeout)
	}
	if cfg.ReadTimeout < time.Millisecond {
		return fmt.Errorf("read timeout too short: %s (minimum 1ms)", cfg.ReadTimeout)
	}
	if cfg.Rate < 0 {
		return fmt.Errorf("rate cannot be negative, got %g", cfg.Rate)
	}
	if cfg.Resolver != "" {
		host, port, err := net.SplitHostPort(cfg.Resolver)
		if err != nil {
			return fmt.Errorf("invalid DNS server address %q: %w", cfg.Resolver, err)
		}
		if host == "" || port == "" {
			return fmt.Errorf("invalid DNS server address %q: host and port required", cfg.Resolver)
		}
	}
	if cfg.Netns != "" && cfg.Container != "" {
		return fmt.Errorf("netns and container are mutually exclusive")
	}
	return nil
}
