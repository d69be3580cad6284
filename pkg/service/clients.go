package service

import (
	"context"
	"strings"

	"github.com/dtelecom/channel-auth/pkg/supabase"
)

// SupabaseValidator authenticates against GoTrue.
type SupabaseValidator struct {
	client      *supabase.Client
	emailDomain string
}

func NewSupabaseValidator(client *supabase.Client, emailDomain string) *SupabaseValidator {
	return &SupabaseValidator{
		client:      client,
		emailDomain: emailDomain,
	}
}

func (v *SupabaseValidator) Validate(ctx context.Context, identifier string, secret string) (*UserIdentity, error) {
	email := identifier
	if !strings.Contains(email, "@") {
		// compatibility shim for clients that send a bare username instead
		// of an email address. not a security boundary.
		email = email + "@" + v.emailDomain
	}

	user, err := v.client.SignInWithPassword(ctx, email, secret)
	if err != nil {
		return nil, err
	}

	// display identity is always the local part of the addressable
	// identifier, never a stored profile name
	return &UserIdentity{
		ID:       user.ID,
		Username: strings.SplitN(email, "@", 2)[0],
	}, nil
}

// SupabaseAuthStore reads authorization records and channel records through
// PostgREST.
type SupabaseAuthStore struct {
	client *supabase.Client
}

func NewSupabaseAuthStore(client *supabase.Client) *SupabaseAuthStore {
	return &SupabaseAuthStore{client: client}
}

func (s *SupabaseAuthStore) AllowedChannels(ctx context.Context, userID string) ([]string, error) {
	return s.client.AllowedChannels(ctx, userID)
}

func (s *SupabaseAuthStore) ResolveChannels(ctx context.Context, uids []string) ([]*ChannelInfo, error) {
	channels, err := s.client.Channels(ctx, uids)
	if err != nil {
		return nil, err
	}

	infos := make([]*ChannelInfo, 0, len(channels))
	for _, channel := range channels {
		infos = append(infos, &ChannelInfo{
			UID:  channel.UID,
			Name: channel.Name,
		})
	}
	return infos, nil
}
