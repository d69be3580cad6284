package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtelecom/channel-auth/pkg/supabase"
)

func TestSignInWithPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		require.Equal(t, "service-key", r.Header.Get("apikey"))

		body := struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Email == "alice@example.com" && body.Password == "correct" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "session-token",
				"user":         map[string]string{"id": "uid-alice", "email": body.Email},
			})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_description": "Invalid login credentials",
		})
	}))
	defer server.Close()

	client := supabase.NewClient(server.URL, "service-key")

	t.Run("valid credentials return the user", func(t *testing.T) {
		user, err := client.SignInWithPassword(context.Background(), "alice@example.com", "correct")
		require.NoError(t, err)
		require.Equal(t, "uid-alice", user.ID)
	})

	t.Run("rejected credentials surface as ErrInvalidCredentials", func(t *testing.T) {
		user, err := client.SignInWithPassword(context.Background(), "alice@example.com", "wrong")
		require.ErrorIs(t, err, supabase.ErrInvalidCredentials)
		require.Nil(t, user)
	})
}

func TestAllowedChannels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/users", r.URL.Path)
		require.Equal(t, "allowed_channels", r.URL.Query().Get("select"))
		require.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("uid") {
		case "eq.uid-alice":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"allowed_channels": []string{"ch-1", "ch-2"},
			})
		case "eq.uid-bob":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"allowed_channels": nil,
			})
		default:
			// PostgREST object mode with zero rows
			w.WriteHeader(http.StatusNotAcceptable)
		}
	}))
	defer server.Close()

	client := supabase.NewClient(server.URL, "service-key")

	t.Run("returns the channel uids", func(t *testing.T) {
		uids, err := client.AllowedChannels(context.Background(), "uid-alice")
		require.NoError(t, err)
		require.Equal(t, []string{"ch-1", "ch-2"}, uids)
	})

	t.Run("absent list is a valid empty result", func(t *testing.T) {
		uids, err := client.AllowedChannels(context.Background(), "uid-bob")
		require.NoError(t, err)
		require.Empty(t, uids)
	})

	t.Run("missing record is ErrUserNotFound", func(t *testing.T) {
		_, err := client.AllowedChannels(context.Background(), "uid-ghost")
		require.ErrorIs(t, err, supabase.ErrUserNotFound)
	})
}

func TestChannels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/channels", r.URL.Path)
		require.Equal(t, "uid,name", r.URL.Query().Get("select"))
		require.Equal(t, "in.(ch-1,ch-2,ch-gone)", r.URL.Query().Get("uid"))

		// ch-gone no longer exists, it is simply absent
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"uid": "ch-1", "name": "General"},
			{"uid": "ch-2", "name": "Music"},
		})
	}))
	defer server.Close()

	client := supabase.NewClient(server.URL, "service-key")

	channels, err := client.Channels(context.Background(), []string{"ch-1", "ch-2", "ch-gone"})
	require.NoError(t, err)
	require.Len(t, channels, 2)
	require.Equal(t, "General", channels[0].Name)
	require.Equal(t, "ch-2", channels[1].UID)
}

func TestStoreUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	server.Close()

	client := supabase.NewClient(server.URL, "service-key")
	_, err := client.Channels(context.Background(), []string{"ch-1"})
	require.Error(t, err)
	require.NotErrorIs(t, err, supabase.ErrUserNotFound)
}
