package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrEnvFileNotLoaded is returned when an explicitly requested .env file cannot be loaded.
	ErrEnvFileNotLoaded = errors.New("failed to load env file")
)
