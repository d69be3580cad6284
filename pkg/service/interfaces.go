package service

import (
	"context"
)

// UserIdentity is the authenticated caller. It lives for one request and is
// never persisted.
type UserIdentity struct {
	ID       string
	Username string
}

// ChannelInfo is a read-only snapshot of one channel record.
type ChannelInfo struct {
	UID  string
	Name string
}

// CredentialValidator verifies an identifier/secret pair against the
// identity provider and derives the display identity.
type CredentialValidator interface {
	Validate(ctx context.Context, identifier string, secret string) (*UserIdentity, error)
}

// AuthorizationResolver returns the channel uids a user may join. A missing
// authorization record is an error; an empty list is not.
type AuthorizationResolver interface {
	AllowedChannels(ctx context.Context, userID string) ([]string, error)
}

// ChannelDirectory resolves channel uids to channel records. Stale uids are
// dropped from the result. Ordering carries no meaning.
type ChannelDirectory interface {
	ResolveChannels(ctx context.Context, uids []string) ([]*ChannelInfo, error)
}

// GrantMinter produces one signed access grant for a user/channel pair.
type GrantMinter interface {
	Mint(identity *UserIdentity, channel *ChannelInfo) (*ChannelGrant, error)
}
