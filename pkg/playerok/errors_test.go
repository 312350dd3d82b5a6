package playerok_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

var errTestReset = errors.New("connection reset")

func TestUpstreamError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *playerok.UpstreamError
		expected string
	}{
		{
			name:     "bare",
			err:      &playerok.UpstreamError{},
			expected: "upstream error",
		},
		{
			name:     "status and cause",
			err:      &playerok.UpstreamError{Operation: "deals", StatusCode: 502, Err: errTestReset},
			expected: "upstream error in deals (status 502): connection reset",
		},
		{
			name: "single GraphQL error",
			err: &playerok.UpstreamError{
				Operation: "item",
				Errors:    []playerok.GraphQLError{{Message: "Item not found"}},
			},
			expected: "upstream error in item: Item not found",
		},
		{
			name: "multiple GraphQL errors",
			err: &playerok.UpstreamError{
				Errors: []playerok.GraphQLError{{Message: "first"}, {Message: "second"}},
			},
			expected: "upstream error: multiple errors: first; second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestGraphQLError_Code(t *testing.T) {
	t.Parallel()

	withCode := playerok.GraphQLError{Extensions: map[string]interface{}{"code": "UNAUTHENTICATED"}}
	assert.Equal(t, "UNAUTHENTICATED", withCode.Code())

	assert.Empty(t, playerok.GraphQLError{}.Code())
	assert.Empty(t, playerok.GraphQLError{Extensions: map[string]interface{}{"code": 401}}.Code())
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	unauthorized := fmt.Errorf("getting viewer: %w", &playerok.UpstreamError{StatusCode: 401, Err: playerok.ErrUnauthorized})
	assert.True(t, playerok.IsUnauthorized(unauthorized))
	assert.True(t, playerok.IsUpstream(unauthorized))
	assert.False(t, playerok.IsNetwork(unauthorized))

	network := fmt.Errorf("listing chats: %w", &playerok.NetworkError{Operation: "chats", Err: errTestReset})
	assert.True(t, playerok.IsNetwork(network))
	assert.ErrorIs(t, network, errTestReset)
	assert.Equal(t, "listing chats: network error in chats: connection reset", network.Error())

	invalid := playerok.InvalidArgumentError("limit must be positive, got %d", -1)
	assert.True(t, playerok.IsInvalidArgument(invalid))
	assert.Equal(t, "invalid argument: limit must be positive, got -1", invalid.Error())

	assert.True(t, playerok.IsNotFound(fmt.Errorf("getting item: %w", playerok.ErrNotFound)))
	assert.True(t, playerok.IsClientNotAttached(playerok.ErrClientNotAttached))
	assert.False(t, playerok.IsNotFound(nil))
}
