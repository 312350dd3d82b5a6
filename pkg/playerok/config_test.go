package playerok_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := playerok.DefaultConfig()
	assert.Equal(t, "https://playerok.com/", config.BaseURL)
	assert.True(t, config.UseIdentityMap)
	assert.Equal(t, 10*time.Second, config.RequestTimeout)
	assert.Zero(t, config.RetryMax)
}

// LoadConfig reads the process environment, so these tests do not run in
// parallel.
func TestLoadConfig(t *testing.T) {
	t.Run("file and environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "playerok.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://staging.playerok.com/
request_timeout: 30s
use_identity_map: false
retry_max: 3
persisted_queries:
  viewer: abc123
`), 0o600))

		t.Setenv("PLAYEROK_ACCESS_TOKEN", "env-token")
		t.Setenv("PLAYEROK_RETRY_MAX", "5")

		config, err := playerok.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "env-token", config.AccessToken)
		assert.Equal(t, "https://staging.playerok.com/", config.BaseURL)
		assert.Equal(t, 30*time.Second, config.RequestTimeout)
		assert.False(t, config.UseIdentityMap)
		assert.Equal(t, 5, config.RetryMax)
		assert.Equal(t, "abc123", config.PersistedQueries["viewer"])
	})

	t.Run("missing file uses defaults", func(t *testing.T) {
		t.Setenv("PLAYEROK_ACCESS_TOKEN", "")

		config, err := playerok.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "https://playerok.com/", config.BaseURL)
		assert.True(t, config.UseIdentityMap)
		assert.Equal(t, "info", config.LogLevel)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))

		_, err := playerok.LoadConfig(path)
		require.Error(t, err)
	})
}

func TestConfig_Normalize(t *testing.T) {
	t.Setenv("PLAYEROK_ACCESS_TOKEN", "")
	t.Setenv("PLAYEROK_BASE_URL", "")

	config := &playerok.Config{AccessToken: "token", BaseURL: "playerok.example"}
	config.Normalize()

	assert.Equal(t, "https://playerok.example/", config.BaseURL)
	assert.Equal(t, 10*time.Second, config.RequestTimeout)
	assert.Positive(t, config.RetryWaitMin)
	assert.Positive(t, config.RetryWaitMax)

	empty := &playerok.Config{}
	empty.Normalize()
	assert.Equal(t, "https://playerok.com/", empty.BaseURL)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *playerok.Config
		wantErr error
	}{
		{
			name:   "valid",
			config: &playerok.Config{AccessToken: "token", BaseURL: "https://playerok.com/"},
		},
		{
			name:    "missing token",
			config:  &playerok.Config{BaseURL: "https://playerok.com/"},
			wantErr: playerok.ErrAccessTokenRequired,
		},
		{
			name:    "bad base URL",
			config:  &playerok.Config{AccessToken: "token", BaseURL: "::"},
			wantErr: playerok.ErrBaseURLInvalid,
		},
		{
			name:    "negative retries",
			config:  &playerok.Config{AccessToken: "token", BaseURL: "https://playerok.com/", RetryMax: -1},
			wantErr: playerok.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_WriteYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "playerok.yaml")

	config := playerok.DefaultConfig()
	config.AccessToken = "secret-token"

	require.NoError(t, config.WriteYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: https://playerok.com/")
	assert.NotContains(t, string(data), "secret-token")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
