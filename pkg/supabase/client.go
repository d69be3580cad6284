package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user record not found")
)

// Client talks to a Supabase project's GoTrue and PostgREST endpoints with
// service-role access.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL string, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}

func (c *Client) restGet(ctx context.Context, table string, query url.Values, single bool, out interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)
	if single {
		// exactly-one-row reads; PostgREST responds 406 otherwise
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "could not query %s", table)
	}
	defer res.Body.Close()

	if single && res.StatusCode == http.StatusNotAcceptable {
		return ErrUserNotFound
	}
	if res.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d querying %s", res.StatusCode, table)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
