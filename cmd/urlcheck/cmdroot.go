// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/siemens/urlcheck/config"

	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

var errUsage = errors.New("usage: urlcheck URLS_FILENAME NUMBER_OF_WORKERS")

func newRootCmd() (rootCmd *cobra.Command) {
	v := config.NewViper()
	var (
		configFile string
		cfg        *config.Config
		workers    int
	)
	rootCmd = &cobra.Command{
		Use:          "urlcheck [flags] URLS_FILENAME NUMBER_OF_WORKERS",
		Short:        "urlcheck checks the reachability of the URLs listed in a file",
		Version:      "1.0",
		SilenceUsage: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("%w (NUMBER_OF_WORKERS must be a positive integer, got %q)",
					errUsage, args[1])
			}
			workers = n
			return nil
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) (err error) {
			cfg, err = config.Load(v, configFile)
			if err != nil {
				return err
			}
			if cfg.Debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return CheckAndReport(cmd.Context(), cfg, args[0], workers,
				cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	// Anything following URLS_FILENAME is positional, so that a negative
	// NUMBER_OF_WORKERS isn't taken for a shorthand flag.
	rootCmd.Flags().SetInterspersed(false)
	// Sets up the flags.
	def := config.Defaults()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "",
		"optional YAML configuration file")
	pf.Int(config.KeyQueueCapacity, def.QueueCapacity,
		"capacity of the URL queue between reader and workers")
	pf.Duration(config.KeyConnectTimeout, def.ConnectTimeout,
		"connect timeout per URL")
	pf.Duration(config.KeyReadTimeout, def.ReadTimeout,
		"response timeout per URL")
	pf.String(config.KeyUserAgent, def.UserAgent,
		"User-Agent header sent with each probe")
	pf.String(config.KeyResolver, "",
		"resolve host names using this DNS server (host:port) instead of the system resolver")
	pf.String(config.KeyNetns, "",
		"probe from inside the network namespace referenced by this path")
	pf.String(config.KeyContainer, "",
		"probe from inside the network namespace of this Docker container")
	pf.Float64(config.KeyRate, 0,
		"maximum number of probes per second, 0 is unlimited")
	pf.String(config.KeyMetricsFile, "",
		"write Prometheus metrics of the run to this file")
	pf.Bool(config.KeyProgress, false,
		"show live progress on stderr")
	pf.Bool(config.KeyDebug, false,
		"enable debugging output")
	if err := v.BindPFlags(pf); err != nil {
		panic(err)
	}
	return
}
