package supabase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type userRecord struct {
	AllowedChannels []string `json:"allowed_channels"`
}

type Channel struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// AllowedChannels looks up the authorization record for a user and returns
// the channel uids it grants. A missing record is ErrUserNotFound; a record
// with no channels is a valid empty result.
func (c *Client) AllowedChannels(ctx context.Context, userID string) ([]string, error) {
	query := url.Values{}
	query.Set("select", "allowed_channels")
	query.Set("uid", "eq."+userID)

	record := userRecord{}
	if err := c.restGet(ctx, "users", query, true, &record); err != nil {
		return nil, err
	}
	return record.AllowedChannels, nil
}

// Channels resolves channel uids to channel records. Uids that no longer
// exist are absent from the result, not errors; that is how deleted channels
// drop out of stale authorization lists.
func (c *Client) Channels(ctx context.Context, uids []string) ([]*Channel, error) {
	query := url.Values{}
	query.Set("select", "uid,name")
	query.Set("uid", fmt.Sprintf("in.(%s)", strings.Join(uids, ",")))

	var channels []*Channel
	if err := c.restGet(ctx, "channels", query, false, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}
