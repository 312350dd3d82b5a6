package graphql_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/playerok-client/internal/graphql"
	pohttp "github.com/fivetwenty-io/playerok-client/internal/http"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

func newExecutor(t *testing.T, handler http.HandlerFunc, opts ...graphql.Option) *graphql.Executor {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return graphql.NewExecutor(pohttp.NewClient(server.URL+"/", nil), opts...)
}

func TestNewPayload(t *testing.T) {
	t.Parallel()

	t.Run("full document without hash", func(t *testing.T) {
		t.Parallel()

		payload := graphql.NewPayload(graphql.OpViewer, nil, nil)
		assert.Equal(t, "viewer", payload.OperationName)
		assert.Equal(t, graphql.OpViewer.Query, payload.Query)
		assert.Nil(t, payload.Extensions)
		assert.NotNil(t, payload.Variables)
	})

	t.Run("hash only when persisted", func(t *testing.T) {
		t.Parallel()

		payload := graphql.NewPayload(graphql.OpUser, graphql.Variables{"id": "u1"}, map[string]string{"user": "abc123"})
		assert.Empty(t, payload.Query)
		require.NotNil(t, payload.Extensions)
		require.NotNil(t, payload.Extensions.PersistedQuery)
		assert.Equal(t, 1, payload.Extensions.PersistedQuery.Version)
		assert.Equal(t, "abc123", payload.Extensions.PersistedQuery.SHA256Hash)

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"operationName":"user","variables":{"id":"u1"},"extensions":{"persistedQuery":{"version":1,"sha256Hash":"abc123"}}}`,
			string(data))
	})
}

func TestPagination(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]interface{}{"first": 24, "after": nil}, graphql.Pagination(24, ""))
	assert.Equal(t, map[string]interface{}{"first": 2, "after": "c1"}, graphql.Pagination(2, "c1"))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestExecutor_Execute(t *testing.T) {
	t.Parallel()

	t.Run("decodes data", func(t *testing.T) {
		t.Parallel()

		executor := newExecutor(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/graphql", request.URL.Path)

			var payload graphql.Payload

			_ = json.NewDecoder(request.Body).Decode(&payload)
			assert.Equal(t, "viewer", payload.OperationName)
			assert.NotEmpty(t, payload.Query)

			_, _ = writer.Write([]byte(`{"data":{"viewer":{"id":"me","username":"seller"}}}`))
		})

		var data struct {
			Viewer *graphql.ViewerRecord `json:"viewer"`
		}

		err := executor.Execute(context.Background(), graphql.OpViewer, nil, &data)
		require.NoError(t, err)
		require.NotNil(t, data.Viewer)
		assert.Equal(t, "me", data.Viewer.ID)
		assert.Equal(t, "seller", data.Viewer.Account().Username)
	})

	t.Run("sends persisted hash", func(t *testing.T) {
		t.Parallel()

		executor := newExecutor(t, func(writer http.ResponseWriter, request *http.Request) {
			var payload graphql.Payload

			_ = json.NewDecoder(request.Body).Decode(&payload)
			assert.Empty(t, payload.Query)

			if assert.NotNil(t, payload.Extensions) {
				assert.Equal(t, "deadbeef", payload.Extensions.PersistedQuery.SHA256Hash)
			}

			_, _ = writer.Write([]byte(`{"data":{"user":null}}`))
		}, graphql.WithPersistedQueries(map[string]string{"user": "deadbeef"}))

		var data struct {
			User *graphql.UserRecord `json:"user"`
		}

		err := executor.Execute(context.Background(), graphql.OpUser, graphql.Variables{"id": "u1"}, &data)
		require.NoError(t, err)
		assert.Nil(t, data.User)
	})

	t.Run("graphql errors become upstream errors", func(t *testing.T) {
		t.Parallel()

		executor := newExecutor(t, func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"data":null,"errors":[{"message":"Deal is locked","extensions":{"code":"BAD_REQUEST"}}]}`))
		})

		err := executor.Execute(context.Background(), graphql.OpUpdateDeal, nil, nil)
		require.Error(t, err)

		upstreamErr := &playerok.UpstreamError{}
		require.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, "updateDeal", upstreamErr.Operation)
		assert.Contains(t, err.Error(), "Deal is locked")
		assert.False(t, playerok.IsUnauthorized(err))
	})

	t.Run("unauthenticated code maps to unauthorized", func(t *testing.T) {
		t.Parallel()

		executor := newExecutor(t, func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"errors":[{"message":"not logged in","extensions":{"code":"UNAUTHENTICATED"}}]}`))
		})

		err := executor.Execute(context.Background(), graphql.OpViewer, nil, nil)
		require.Error(t, err)
		assert.True(t, playerok.IsUnauthorized(err))
		assert.True(t, playerok.IsUpstream(err))
	})

	t.Run("http status error carries operation", func(t *testing.T) {
		t.Parallel()

		executor := newExecutor(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadGateway)
		})

		err := executor.Execute(context.Background(), graphql.OpChats, nil, nil)
		require.Error(t, err)

		upstreamErr := &playerok.UpstreamError{}
		require.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, "chats", upstreamErr.Operation)
		assert.Equal(t, http.StatusBadGateway, upstreamErr.StatusCode)
	})

	t.Run("network error carries operation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		serverURL := server.URL
		server.Close()

		executor := graphql.NewExecutor(pohttp.NewClient(serverURL, nil))

		err := executor.Execute(context.Background(), graphql.OpDeals, nil, nil)
		require.Error(t, err)

		networkErr := &playerok.NetworkError{}
		require.True(t, errors.As(err, &networkErr))
		assert.Equal(t, "deals", networkErr.Operation)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		executor := newExecutor(t, func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`not json`))
		})

		err := executor.Execute(context.Background(), graphql.OpGames, nil, nil)
		require.ErrorIs(t, err, graphql.ErrMalformedResponse)
		assert.True(t, playerok.IsUpstream(err))
	})
}

func TestExecutor_Upload(t *testing.T) {
	t.Parallel()

	executor := newExecutor(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data"))

		err := request.ParseMultipartForm(1 << 20)
		if !assert.NoError(t, err) {
			return
		}

		var payload graphql.Payload

		err = json.Unmarshal([]byte(request.FormValue("operations")), &payload)
		if assert.NoError(t, err) {
			assert.Equal(t, "createChatMessage", payload.OperationName)
			assert.Contains(t, payload.Variables, "file")
			assert.Nil(t, payload.Variables["file"])
		}

		assert.JSONEq(t, `{"1":["variables.file"]}`, request.FormValue("map"))

		file, header, err := request.FormFile("1")
		if assert.NoError(t, err) {
			defer file.Close()

			content, _ := io.ReadAll(file)
			assert.Equal(t, "cat.png", header.Filename)
			assert.Equal(t, "meow", string(content))
		}

		_, _ = writer.Write([]byte(`{"data":{"createChatMessage":{"id":"m1","isRead":false}}}`))
	})

	var data struct {
		Message *graphql.MessageRecord `json:"createChatMessage"`
	}

	err := executor.Upload(context.Background(), graphql.OpCreateChatMessage,
		graphql.Variables{"input": map[string]interface{}{"chatId": "c1"}, "file": nil},
		[]graphql.Upload{{Variable: "file", FileName: "cat.png", Reader: strings.NewReader("meow")}},
		&data)
	require.NoError(t, err)
	require.NotNil(t, data.Message)
	assert.Equal(t, "m1", data.Message.ID)
}
