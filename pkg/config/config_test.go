package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		conf, err := NewConfig("", true, nil)
		require.NoError(t, err)
		require.Equal(t, uint32(3030), conf.Port)
		require.Equal(t, "example.com", conf.Supabase.EmailDomain)
		require.Equal(t, 6*time.Hour, conf.TokenTTL)
		require.Equal(t, 5*time.Second, conf.RequestTimeout)
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		conf, err := NewConfig(`
port: 8200
supabase:
  url: https://project.supabase.co
  service_key: service-key
livekit:
  host: media.example.com:7880
  api_key: key1
  api_secret: secret1
token_ttl: 1h
`, true, nil)
		require.NoError(t, err)
		require.Equal(t, uint32(8200), conf.Port)
		require.Equal(t, "https://project.supabase.co", conf.Supabase.URL)
		require.Equal(t, time.Hour, conf.TokenTTL)
		require.NoError(t, conf.Validate())
	})

	t.Run("strict mode rejects unknown fields", func(t *testing.T) {
		_, err := NewConfig("unknown_field: true\n", true, nil)
		require.Error(t, err)

		_, err = NewConfig("unknown_field: true\n", false, nil)
		require.NoError(t, err)
	})

	t.Run("development turns on debug logging", func(t *testing.T) {
		conf, err := NewConfig("development: true\n", true, nil)
		require.NoError(t, err)
		require.Equal(t, "debug", conf.Logging.Level)
	})
}

func TestConfigValidate(t *testing.T) {
	validBody := `
supabase:
  url: https://project.supabase.co
  service_key: service-key
livekit:
  api_key: key1
  api_secret: secret1
`
	conf, err := NewConfig(validBody, true, nil)
	require.NoError(t, err)
	require.NoError(t, conf.Validate())

	t.Run("supabase settings are required", func(t *testing.T) {
		conf, err := NewConfig("livekit: {api_key: k, api_secret: s}\n", true, nil)
		require.NoError(t, err)
		require.ErrorIs(t, conf.Validate(), ErrSupabaseNotSet)
	})

	t.Run("keys are required", func(t *testing.T) {
		conf, err := NewConfig(`
supabase:
  url: https://project.supabase.co
  service_key: service-key
`, true, nil)
		require.NoError(t, err)
		require.ErrorIs(t, conf.Validate(), ErrKeysNotSet)
	})
}

func TestAPIKeyPair(t *testing.T) {
	t.Run("inline pair wins", func(t *testing.T) {
		conf := DefaultConfig
		conf.LiveKit.APIKey = "key1"
		conf.LiveKit.APISecret = "secret1"
		key, secret, err := conf.APIKeyPair()
		require.NoError(t, err)
		require.Equal(t, "key1", key)
		require.Equal(t, "secret1", secret)
	})

	t.Run("sole entry in keys map is used", func(t *testing.T) {
		conf := DefaultConfig
		conf.Keys = map[string]string{"key1": "secret1"}
		key, secret, err := conf.APIKeyPair()
		require.NoError(t, err)
		require.Equal(t, "key1", key)
		require.Equal(t, "secret1", secret)
	})

	t.Run("api_key selects from keys map", func(t *testing.T) {
		conf := DefaultConfig
		conf.Keys = map[string]string{"key1": "secret1", "key2": "secret2"}
		conf.LiveKit.APIKey = "key2"
		key, secret, err := conf.APIKeyPair()
		require.NoError(t, err)
		require.Equal(t, "key2", key)
		require.Equal(t, "secret2", secret)
	})

	t.Run("unknown api_key is an error", func(t *testing.T) {
		conf := DefaultConfig
		conf.Keys = map[string]string{"key1": "secret1"}
		conf.LiveKit.APIKey = "missing"
		_, _, err := conf.APIKeyPair()
		require.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("ambiguous keys map is an error", func(t *testing.T) {
		conf := DefaultConfig
		conf.Keys = map[string]string{"key1": "secret1", "key2": "secret2"}
		_, _, err := conf.APIKeyPair()
		require.Error(t, err)
	})
}
