// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. The batch run only consumes the log level;
// the remaining settings drive the HTTP fuel service.
package config
