package graphql_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/playerok-client/internal/graphql"
)

func TestUserRecord_UserProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantNil  bool
		wantID   string
		wantName string
	}{
		{
			name:     "fragment carries fields directly",
			body:     `{"__typename":"UserFragment","id":"u1","username":"alice","isOnline":true}`,
			wantID:   "u1",
			wantName: "alice",
		},
		{
			name:     "user carries nested profile",
			body:     `{"__typename":"User","id":"u2","username":"bob","profile":{"id":"u2","username":"bob","email":"b@example.com"}}`,
			wantID:   "u2",
			wantName: "bob",
		},
		{
			name:     "nested profile without id inherits it",
			body:     `{"__typename":"User","id":"u3","username":"carol","profile":{"rating":4.5}}`,
			wantID:   "u3",
			wantName: "carol",
		},
		{
			name:    "unknown variant",
			body:    `{"__typename":"Bot","id":"u4"}`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var record graphql.UserRecord
			require.NoError(t, json.Unmarshal([]byte(tt.body), &record))

			profile := record.UserProfile()
			if tt.wantNil {
				assert.Nil(t, profile)

				return
			}

			require.NotNil(t, profile)
			assert.Equal(t, tt.wantID, profile.ID)
			assert.Equal(t, tt.wantName, profile.Username)
		})
	}
}

func TestProfileRecord_AccountProfile(t *testing.T) {
	t.Parallel()

	var record graphql.ProfileRecord

	err := json.Unmarshal([]byte(`{
		"id":"me","username":"seller","email":"s@example.com","testimonialCounter":12,
		"balance":{"id":"b1","value":100.5,"available":90,"frozen":10.5,"pendingIncome":0,"withdrawable":90},
		"stats":{"items":{"total":5,"finished":3},"deals":{"incoming":{"total":4,"finished":4},"outgoing":{"total":1,"finished":0}}}
	}`), &record)
	require.NoError(t, err)

	profile := record.AccountProfile()
	assert.Equal(t, "seller", profile.Username)
	assert.Equal(t, "s@example.com", profile.Email)
	require.NotNil(t, profile.ReviewsCount)
	assert.Equal(t, 12, *profile.ReviewsCount)
	assert.InDelta(t, 100.5, profile.Balance.Value, 0.001)
	assert.Equal(t, 5, profile.Stats.Items.Total)
	assert.Equal(t, 4, profile.Stats.IncomingDeals.Finished)
	assert.Equal(t, 1, profile.Stats.OutgoingDeals.Total)
}

func TestConnection(t *testing.T) {
	t.Parallel()

	var conn graphql.Connection[graphql.IDRecord]

	err := json.Unmarshal([]byte(`{
		"edges":[{"node":{"id":"a"}},{"node":null},{"node":{"id":"b"}}],
		"pageInfo":{"hasNextPage":true,"endCursor":"cur-b"},
		"totalCount":3
	}`), &conn)
	require.NoError(t, err)

	assert.Equal(t, []graphql.IDRecord{{ID: "a"}, {ID: "b"}}, conn.Nodes())

	page := conn.Page()
	require.NotNil(t, page)
	assert.Len(t, page.Records, 2)
	assert.True(t, page.PageInfo.HasNextPage)
	assert.Equal(t, "cur-b", page.PageInfo.EndCursor)
	assert.Equal(t, 3, page.TotalCount)

	var missing *graphql.Connection[graphql.IDRecord]
	assert.Nil(t, missing.Page())
	assert.Nil(t, missing.Nodes())
}

func TestConnection_NullEndCursor(t *testing.T) {
	t.Parallel()

	var conn graphql.Connection[graphql.IDRecord]

	err := json.Unmarshal([]byte(`{"edges":[],"pageInfo":{"hasNextPage":false,"endCursor":null}}`), &conn)
	require.NoError(t, err)
	assert.Empty(t, conn.PageInfo.EndCursor)
	assert.Empty(t, conn.Page().Records)
}
