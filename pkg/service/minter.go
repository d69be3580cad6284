package service

import (
	"time"

	"github.com/dtelecom/channel-auth/pkg/auth"
)

// AccessTokenMinter signs LiveKit access tokens with a process-wide key
// pair. Pure function of its inputs and the configured keys.
type AccessTokenMinter struct {
	apiKey    string
	apiSecret string
	host      string
	ttl       time.Duration
}

func NewAccessTokenMinter(apiKey string, apiSecret string, host string, ttl time.Duration) *AccessTokenMinter {
	return &AccessTokenMinter{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		host:      host,
		ttl:       ttl,
	}
}

func (m *AccessTokenMinter) Mint(identity *UserIdentity, channel *ChannelInfo) (*ChannelGrant, error) {
	at := auth.NewAccessToken(m.apiKey, m.apiSecret).
		SetIdentity(identity.Username).
		SetValidFor(m.ttl).
		SetMetadata(map[string]interface{}{
			"name":        identity.Username,
			"channelName": channel.Name,
		}).
		AddGrant(&auth.VideoGrant{
			Room:         channel.UID,
			RoomJoin:     true,
			CanPublish:   true,
			CanSubscribe: true,
		})

	token, err := at.ToJWT()
	if err != nil {
		return nil, err
	}

	return &ChannelGrant{
		Token:       token,
		ChannelUID:  channel.UID,
		ChannelName: channel.Name,
		LivekitHost: m.host,
	}, nil
}
