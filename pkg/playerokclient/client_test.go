package playerokclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
	"github.com/fivetwenty-io/playerok-client/pkg/playerokclient"
)

func newViewerServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/graphql" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		cookie, err := request.Cookie("token")
		if err != nil || cookie.Value != "test-token" {
			writer.WriteHeader(http.StatusUnauthorized)

			return
		}

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"viewer": map[string]interface{}{"id": "me-id", "username": "me", "role": "USER"},
			},
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a config", func(t *testing.T) {
		t.Parallel()

		_, err := playerokclient.New(context.Background(), nil)
		require.ErrorIs(t, err, playerok.ErrConfigRequired)
	})

	t.Run("requires a token", func(t *testing.T) {
		t.Parallel()

		_, err := playerokclient.New(context.Background(), &playerok.Config{AccessToken: "", BaseURL: "https://playerok.example/"})
		require.ErrorIs(t, err, playerok.ErrAccessTokenRequired)
	})

	t.Run("creates a session", func(t *testing.T) {
		t.Parallel()

		server := newViewerServer(t)

		cli, err := playerokclient.New(context.Background(), &playerok.Config{
			AccessToken:    "test-token",
			BaseURL:        server.URL,
			UseIdentityMap: true,
		})
		require.NoError(t, err)

		defer func() { _ = cli.Close(context.Background()) }()

		assert.Equal(t, "me-id", cli.MeID())
		assert.True(t, cli.Attached())
		assert.NotEmpty(t, cli.SessionID())
	})

	t.Run("rejected token", func(t *testing.T) {
		t.Parallel()

		server := newViewerServer(t)

		_, err := playerokclient.New(context.Background(), &playerok.Config{
			AccessToken: "wrong",
			BaseURL:     server.URL,
		})
		assert.True(t, playerok.IsUnauthorized(err))
	})
}

func TestNewFromEnv(t *testing.T) {
	server := newViewerServer(t)

	t.Setenv("PLAYEROK_ACCESS_TOKEN", "test-token")
	t.Setenv("PLAYEROK_BASE_URL", server.URL+"/")

	cli, err := playerokclient.NewFromEnv(context.Background())
	require.NoError(t, err)

	defer func() { _ = cli.Close(context.Background()) }()

	assert.Equal(t, "me-id", cli.MeID())
}
