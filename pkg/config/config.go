package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtelecom/channel-auth/pkg/auth"
)

var (
	ErrKeyFileIncorrectPermission = errors.New("key file others permissions must be set to 0")
	ErrKeysNotSet                 = errors.New("one of key-file, keys, or livekit api_key/api_secret must be provided")
	ErrKeyNotFound                = errors.New("livekit api_key has no matching secret")
	ErrSupabaseNotSet             = errors.New("supabase url and service_key must be provided")
	ErrLiveKitHostNotSet          = errors.New("livekit host must be provided")
)

type Config struct {
	Port          uint32   `yaml:"port,omitempty"`
	BindAddresses []string `yaml:"bind_addresses,omitempty"`

	Supabase SupabaseConfig `yaml:"supabase,omitempty"`
	LiveKit  LiveKitConfig  `yaml:"livekit,omitempty"`

	KeyFile string            `yaml:"key_file,omitempty"`
	Keys    map[string]string `yaml:"keys,omitempty"`

	// lifetime of minted access tokens
	TokenTTL time.Duration `yaml:"token_ttl,omitempty"`
	// upper bound on each call to an external service
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`

	Logging LoggingConfig `yaml:"logging,omitempty"`

	Development bool `yaml:"development,omitempty"`
}

type SupabaseConfig struct {
	URL        string `yaml:"url,omitempty"`
	ServiceKey string `yaml:"service_key,omitempty"`
	// bare usernames are canonicalized to <username>@<email_domain> before
	// they reach the identity provider. compatibility shim for clients that
	// predate email sign-in, not a security boundary.
	EmailDomain string `yaml:"email_domain,omitempty"`
}

type LiveKitConfig struct {
	// host advertised to media clients alongside each token
	Host      string `yaml:"host,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	APISecret string `yaml:"api_secret,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

var DefaultConfig = Config{
	Port: 3030,
	Supabase: SupabaseConfig{
		EmailDomain: "example.com",
	},
	LiveKit: LiveKitConfig{
		Host: "localhost:7880",
	},
	TokenTTL:       6 * time.Hour,
	RequestTimeout: 5 * time.Second,
}

func NewConfig(confString string, strictMode bool, c *cli.Context) (*Config, error) {
	conf := DefaultConfig

	if confString != "" {
		decoder := yaml.NewDecoder(strings.NewReader(confString))
		decoder.KnownFields(strictMode)
		if err := decoder.Decode(&conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		if err := conf.updateFromCLI(c); err != nil {
			return nil, err
		}
	}

	// expand env vars in filenames
	file, err := homedir.Expand(os.ExpandEnv(conf.KeyFile))
	if err != nil {
		return nil, err
	}
	conf.KeyFile = file

	if conf.Logging.Level == "" && conf.Development {
		conf.Logging.Level = "debug"
	}

	return &conf, nil
}

func (conf *Config) updateFromCLI(c *cli.Context) error {
	if c.IsSet("key-file") {
		conf.KeyFile = c.String("key-file")
	}
	if c.IsSet("keys") {
		if err := yaml.Unmarshal([]byte(c.String("keys")), &conf.Keys); err != nil {
			return errors.Wrap(err, "could not parse keys")
		}
	}
	if c.IsSet("bind") {
		conf.BindAddresses = c.StringSlice("bind")
	}
	if c.IsSet("port") {
		conf.Port = uint32(c.Uint("port"))
	}
	if c.IsSet("supabase-url") {
		conf.Supabase.URL = c.String("supabase-url")
	}
	if c.IsSet("supabase-service-key") {
		conf.Supabase.ServiceKey = c.String("supabase-service-key")
	}
	if c.IsSet("livekit-host") {
		conf.LiveKit.Host = c.String("livekit-host")
	}
	if c.IsSet("livekit-api-key") {
		conf.LiveKit.APIKey = c.String("livekit-api-key")
	}
	if c.IsSet("livekit-api-secret") {
		conf.LiveKit.APISecret = c.String("livekit-api-secret")
	}
	if c.IsSet("dev") {
		conf.Development = c.Bool("dev")
	}
	return nil
}

// Validate fails fast on anything the service cannot start without.
func (conf *Config) Validate() error {
	if conf.Supabase.URL == "" || conf.Supabase.ServiceKey == "" {
		return ErrSupabaseNotSet
	}
	if conf.LiveKit.Host == "" {
		return ErrLiveKitHostNotSet
	}
	if _, _, err := conf.APIKeyPair(); err != nil {
		return err
	}
	return nil
}

// APIKeyPair resolves the signing key pair from inline config, the keys map,
// or the key file, in that order.
func (conf *Config) APIKeyPair() (string, string, error) {
	if conf.LiveKit.APIKey != "" && conf.LiveKit.APISecret != "" {
		return conf.LiveKit.APIKey, conf.LiveKit.APISecret, nil
	}

	keys := conf.Keys
	if len(keys) == 0 && conf.KeyFile != "" {
		if st, err := os.Stat(conf.KeyFile); err != nil {
			return "", "", err
		} else if st.Mode().Perm()&0007 != 0000 {
			return "", "", ErrKeyFileIncorrectPermission
		}
		f, err := os.Open(conf.KeyFile)
		if err != nil {
			return "", "", err
		}
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&keys); err != nil {
			return "", "", errors.Wrap(err, "could not parse key file")
		}
	}
	if len(keys) == 0 {
		return "", "", ErrKeysNotSet
	}

	provider := auth.NewSimpleKeyProvider(keys)
	if conf.LiveKit.APIKey != "" {
		secret := provider.GetSecret(conf.LiveKit.APIKey)
		if secret == "" {
			return "", "", ErrKeyNotFound
		}
		return conf.LiveKit.APIKey, secret, nil
	}
	if provider.NumKeys() == 1 {
		for key, secret := range keys {
			return key, secret, nil
		}
	}
	return "", "", errors.New("multiple keys configured, set livekit api_key to select one")
}
