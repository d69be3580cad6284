package service

import (
	"github.com/dtelecom/channel-auth/pkg/config"
	"github.com/dtelecom/channel-auth/pkg/supabase"
)

// InitializeServer assembles the full service from validated configuration.
func InitializeServer(conf *config.Config) (*AuthServer, error) {
	apiKey, apiSecret, err := conf.APIKeyPair()
	if err != nil {
		return nil, err
	}

	client := supabase.NewClient(conf.Supabase.URL, conf.Supabase.ServiceKey)
	store := NewSupabaseAuthStore(client)

	tokenService := NewTokenService(
		NewSupabaseValidator(client, conf.Supabase.EmailDomain),
		store,
		store,
		NewAccessTokenMinter(apiKey, apiSecret, conf.LiveKit.Host, conf.TokenTTL),
		conf.RequestTimeout,
	)

	return NewAuthServer(conf, tokenService), nil
}
