package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration structs keyed by their type name so
// each unique configuration type is parsed from the environment only once.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	globalCache = &configCache{
		values: make(map[string]any),
	}

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into the provided configuration struct
// based on `env` field tags. The default .env file is loaded lazily on first
// use; a missing file is not an error. Once a configuration type is loaded,
// subsequent calls for the same type return the cached copy.
//
// Example:
//
//	type BrokerConfig struct {
//		URL      string `env:"RABBITMQ_URL,required"`
//		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"blog-events"`
//	}
//
//	var cfg BrokerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	globalCache.mu.Lock()
	// Another goroutine may have parsed the same type concurrently; the first
	// stored copy wins so all callers observe identical values.
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
	} else {
		globalCache.values[typeName] = *v
	}
	globalCache.mu.Unlock()

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Useful for configurations required for the application to start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv loads environment variables from the given .env files before any
// configuration structs are parsed. Later files take precedence over earlier
// ones. Unlike the implicit default load, missing files are reported.
func LoadEnv(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := godotenv.Overload(path); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrEnvFileNotLoaded, path))
		}
	}
	return errors.Join(errs...)
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// ResetCache clears cached configurations. Intended for tests that mutate the
// environment between Load calls.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.mu.Unlock()
}

// getTypeName returns a string identifier for the generic type T.
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// Handle interface types
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
