package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/config"
)

type brokerConfig struct {
	URL      string `env:"TEST_BROKER_URL"`
	Exchange string `env:"TEST_BROKER_EXCHANGE" envDefault:"blog-events"`
	Attempts int    `env:"TEST_BROKER_ATTEMPTS" envDefault:"3"`
}

type requiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_BROKER_URL", "amqp://localhost:5672")
	config.ResetCache()

	var cfg brokerConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "amqp://localhost:5672", cfg.URL)
	assert.Equal(t, "blog-events", cfg.Exchange)
	assert.Equal(t, 3, cfg.Attempts)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("TEST_BROKER_URL", "amqp://first:5672")
	config.ResetCache()

	var first brokerConfig
	require.NoError(t, config.Load(&first))

	// A changed environment must not leak into subsequent loads of the same type.
	t.Setenv("TEST_BROKER_URL", "amqp://second:5672")

	var second brokerConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first.URL, second.URL)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[brokerConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_RequiredMissing(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/does_not_exist.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrEnvFileNotLoaded)
}
