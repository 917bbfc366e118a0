// Package config defines the application configuration structures and
// loading logic. Configuration is read from environment variables with
// the TASKBOARD_ prefix and, optionally, a config.yaml file in the
// working directory; environment variables take precedence.
package config
