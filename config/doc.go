/*
Package config assembles and validates the configuration of a urlcheck run.

Settings come from (in increasing order of precedence) built-in defaults, an
optional YAML configuration file, URLCHECK_* environment variables, and CLI
flags bound to a viper instance.
*/
package config
