package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/dtelecom/channel-auth/pkg/logger"
)

const maxMintWorkers = 10

type TokenRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChannelGrant struct {
	Token       string `json:"token"`
	ChannelUID  string `json:"channelUid"`
	ChannelName string `json:"channelName"`
	LivekitHost string `json:"livekitHost"`
}

type TokenResponse struct {
	Message  string          `json:"message"`
	Username string          `json:"username"`
	UserID   string          `json:"userId"`
	Channels []*ChannelGrant `json:"channels"`
}

// TokenService authenticates a user, resolves the channels they may join,
// and mints one access token per channel.
type TokenService struct {
	validator CredentialValidator
	resolver  AuthorizationResolver
	directory ChannelDirectory
	minter    GrantMinter
	timeout   time.Duration
	mintPool  *workerpool.WorkerPool
}

func NewTokenService(
	validator CredentialValidator,
	resolver AuthorizationResolver,
	directory ChannelDirectory,
	minter GrantMinter,
	timeout time.Duration,
) *TokenService {
	return &TokenService{
		validator: validator,
		resolver:  resolver,
		directory: directory,
		minter:    minter,
		timeout:   timeout,
		mintPool:  workerpool.New(maxMintWorkers),
	}
}

// Stop drains the mint pool. In-flight requests finish their grants first.
func (s *TokenService) Stop() {
	s.mintPool.StopWait()
}

func (s *TokenService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		handleError(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed, nil)
		return
	}

	req := TokenRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, http.StatusBadRequest, ErrCredentialsRequired, err)
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" || req.Password == "" {
		handleError(w, r, http.StatusBadRequest, ErrCredentialsRequired, nil)
		return
	}

	identity, err := s.validate(r.Context(), identifier, req.Password)
	if err != nil {
		// generic message only, provider detail stays in the logs
		handleError(w, r, http.StatusUnauthorized, ErrAuthenticationFailed, err)
		return
	}

	uids, err := s.allowedChannels(r.Context(), identity.ID)
	if err != nil {
		handleError(w, r, http.StatusNotFound, ErrUserRecordNotFound, err)
		return
	}

	if len(uids) == 0 {
		writeJSON(w, http.StatusOK, &TokenResponse{
			Message:  "user has no channel access",
			Username: identity.Username,
			UserID:   identity.ID,
			Channels: []*ChannelGrant{},
		})
		return
	}

	channels, err := s.resolveChannels(r.Context(), uids)
	if err != nil {
		handleError(w, r, http.StatusInternalServerError, ErrDirectoryUnavailable, err)
		return
	}

	writeJSON(w, http.StatusOK, &TokenResponse{
		Message:  "authentication successful",
		Username: identity.Username,
		UserID:   identity.ID,
		Channels: s.mintAll(identity, channels),
	})
}

func (s *TokenService) validate(ctx context.Context, identifier string, secret string) (*UserIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.validator.Validate(ctx, identifier, secret)
}

func (s *TokenService) allowedChannels(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.resolver.AllowedChannels(ctx, userID)
}

func (s *TokenService) resolveChannels(ctx context.Context, uids []string) ([]*ChannelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.directory.ResolveChannels(ctx, uids)
}

// mintAll fans minting out over the channel set and joins before returning.
// A failed mint drops that channel from the response, it never fails the
// request. Result ordering is unspecified.
func (s *TokenService) mintAll(identity *UserIdentity, channels []*ChannelInfo) []*ChannelGrant {
	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	grants := make([]*ChannelGrant, 0, len(channels))

	for _, channel := range channels {
		channel := channel
		wg.Add(1)
		s.mintPool.Submit(func() {
			defer wg.Done()
			grant, err := s.minter.Mint(identity, channel)
			if err != nil {
				logger.Warnw("could not mint access token", err,
					"channel", channel.UID, "identity", identity.Username)
				return
			}
			mu.Lock()
			grants = append(grants, grant)
			mu.Unlock()
		})
	}
	wg.Wait()

	return grants
}
