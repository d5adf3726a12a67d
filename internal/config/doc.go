// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and LESSON_-prefixed environment
// variables. It provides type-safe access to the settings needed by the
// synthesis engine, its adapters and the HTTP server while keeping
// configuration details separate from business logic.
package config
