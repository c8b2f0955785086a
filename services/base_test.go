package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	mu          sync.Mutex
	token       string
	invalidated bool
}

func (f *fakeTokens) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) SetAccessToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeTokens) Invalidate() {
	f.mu.Lock()
	f.invalidated = true
	f.token = ""
	f.mu.Unlock()
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &fakeTokens{token: "access-1"})
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.get(context.Background(), "/ping", &out))

	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.True(t, out.OK)
}

func TestClientRetriesAfterTokenRefresh(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		mu.Lock()
		seen = append(seen, auth)
		mu.Unlock()
		if auth != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "access-1"}
	c := NewClient(srv.URL, tokens)
	c.SetRefresh(func(ctx context.Context) (string, error) {
		return "access-2", nil
	})

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.get(context.Background(), "/ping", &out))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"Bearer access-1", "Bearer access-2"}, seen)
	assert.Equal(t, "access-2", tokens.AccessToken())
	assert.False(t, tokens.invalidated)
}

func TestClientExpiresSessionWhenRefreshFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "access-1"}
	c := NewClient(srv.URL, tokens)
	c.SetRefresh(func(ctx context.Context) (string, error) {
		return "", errors.New("refresh token rejected")
	})

	err := c.get(context.Background(), "/ping", nil)

	assert.ErrorIs(t, err, ErrAuthExpired)
	assert.True(t, tokens.invalidated)
}

func TestClientExpiresSessionWhenRetryStillRejected(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "access-1"}
	c := NewClient(srv.URL, tokens)
	c.SetRefresh(func(ctx context.Context) (string, error) {
		return "access-2", nil
	})

	err := c.get(context.Background(), "/ping", nil)

	assert.ErrorIs(t, err, ErrAuthExpired)
	assert.True(t, tokens.invalidated)
	assert.Equal(t, 2, calls, "exactly one retry after refresh")
}

func TestClientSkipsRefreshWhenTokenAlreadyReplaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "access-1"}
	c := NewClient(srv.URL, tokens)
	refreshCalls := 0
	c.SetRefresh(func(ctx context.Context) (string, error) {
		refreshCalls++
		return "access-2", nil
	})

	// A concurrent caller already swapped the token in by the time this
	// request's 401 comes back.
	usedToken := tokens.AccessToken()
	tokens.SetAccessToken("access-2")
	assert.True(t, c.refreshed(context.Background(), usedToken))
	assert.Zero(t, refreshCalls)
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "restaurant not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.get(context.Background(), "/missing", nil)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "restaurant not found", se.Message)
}

func TestClientUnauthorizedWithoutTokensIsPlainStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.get(context.Background(), "/ping", nil)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.NotErrorIs(t, err, ErrAuthExpired)
}
