package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type authErrorResponse struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

// SignInWithPassword validates an email/password pair against GoTrue and
// returns the authenticated user. Provider rejections come back as
// ErrInvalidCredentials with no partial identity attached.
func (c *Client) SignInWithPassword(ctx context.Context, email string, password string) (*User, error) {
	body, err := json.Marshal(&signInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach identity provider")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		authErr := authErrorResponse{}
		_ = json.NewDecoder(res.Body).Decode(&authErr)
		msg := authErr.ErrorDescription
		if msg == "" {
			msg = authErr.Message
		}
		if msg != "" {
			return nil, errors.Wrap(ErrInvalidCredentials, msg)
		}
		return nil, ErrInvalidCredentials
	}

	signIn := signInResponse{}
	if err := json.NewDecoder(res.Body).Decode(&signIn); err != nil {
		return nil, err
	}
	if signIn.User.ID == "" {
		return nil, ErrInvalidCredentials
	}
	return &signIn.User, nil
}
