package playerokclient

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/playerok-client/internal/client"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// New creates a marketplace session. Unset config fields are filled with
// defaults before validation; the config is modified in place.
func New(ctx context.Context, config *playerok.Config) (playerok.Client, error) {
	if config == nil {
		return nil, playerok.ErrConfigRequired
	}

	config.Normalize()

	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	session, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return session, nil
}

// NewWithToken creates a session for token against the default marketplace
// with the identity map enabled.
func NewWithToken(ctx context.Context, token string) (playerok.Client, error) {
	config := playerok.DefaultConfig()
	config.AccessToken = token

	return New(ctx, config)
}

// NewFromEnv creates a session configured from PLAYEROK_* environment
// variables.
func NewFromEnv(ctx context.Context) (playerok.Client, error) {
	return NewFromFile(ctx, "")
}

// NewFromFile creates a session from the YAML file at path, overridden by
// PLAYEROK_* environment variables. A missing file is not an error.
func NewFromFile(ctx context.Context, path string) (playerok.Client, error) {
	config, err := playerok.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if config.LogLevel != "" && config.Debug {
		config.Logger = playerok.NewConsoleLogger(config.LogLevel)
	}

	return New(ctx, config)
}
