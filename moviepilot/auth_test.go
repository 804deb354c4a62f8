package moviepilot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLoginRejectedCredentials(t *testing.T) {
	server := newMockServer(t, func(w http.ResponseWriter, r *http.Request, _ string) {
		t.Error("no API request expected when login fails")
	})

	client, err := NewClient(server.URL, "admin", "wrong", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	err = client.Login(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Message, "incorrect username or password")
}

// HTTP 200 without an access_token field is still a login failure.
func TestLoginMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token_type":"bearer"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "admin", "secret", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	err = client.Login(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "no access token")
}

func TestLoginNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, "admin", "secret", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	err = client.Login(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, authErr.StatusCode)
	assert.Contains(t, authErr.Message, "network error")
}

func TestLoginNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream gone")
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "admin", "secret", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	err = client.Login(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadGateway, authErr.StatusCode)
	assert.Contains(t, authErr.Message, "upstream gone")
}

// All callers racing on a failing first login observe the same failure
// class, and each fails independently with *AuthError.
func TestConcurrentLoginFailure(t *testing.T) {
	var loginCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == LoginEndpoint {
			loginCount.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail":"bad credentials"}`)
			return
		}
		t.Error("no API request expected when login fails")
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "admin", "secret", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	const callers = 8
	errs := make([]error, callers)
	var g errgroup.Group
	for i := range callers {
		g.Go(func() error {
			_, errs[i] = client.CurrentUser(context.Background())
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, err := range errs {
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
	}
}

func TestAuthHeaderReusesToken(t *testing.T) {
	server := newMockServer(t, func(w http.ResponseWriter, r *http.Request, _ string) {})

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	first, err := client.authHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-1", first)

	second, err := client.authHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), server.loginCount.Load())
}

func TestLoginReplacesToken(t *testing.T) {
	server := newMockServer(t, func(w http.ResponseWriter, r *http.Request, _ string) {})

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx))
	require.NoError(t, client.Login(ctx))

	header, err := client.authHeader(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-2", header)
	assert.Equal(t, int64(2), server.loginCount.Load())
}
