// Package config loads environment-driven configuration structs.
//
// Every package in this module declares its own Config struct with `env` field
// tags; this package provides the single generic loader for all of them. Parsed
// configurations are cached per type, so repeated loads across packages are
// cheap and consistent.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
// An optional .env file in the working directory is loaded automatically.
// Additional files can be layered explicitly with LoadEnv.
package config
