package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/playerok-client/internal/auth"
	internalhttp "github.com/fivetwenty-io/playerok-client/internal/http"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

const (
	testMeID     = "me-id"
	testUsername = "me"
	testToken    = "test-token"
)

// graphQLCall is one request received by the fake server.
type graphQLCall struct {
	Operation string
	Variables map[string]interface{}
	// Files are the uploaded file names in part order.
	Files []string
	// FileMap is the multipart "map" field.
	FileMap map[string][]string
}

// graphQLReply is returned by a handler to control the raw response.
type graphQLReply struct {
	Status int
	Body   interface{}
}

// graphQLHandler answers one operation. A plain value is sent as the data
// object; a graphQLReply is sent as is.
type graphQLHandler func(call graphQLCall) interface{}

// fakeGraphQL is an httptest server dispatching on operationName.
type fakeGraphQL struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]graphQLHandler
	calls    []graphQLCall
	cookies  []string
}

func newFakeGraphQL(t *testing.T) *fakeGraphQL {
	t.Helper()

	fake := &fakeGraphQL{
		t:        t,
		handlers: make(map[string]graphQLHandler),
	}

	fake.handle("viewer", func(graphQLCall) interface{} {
		return map[string]interface{}{"viewer": viewerData(testMeID, testUsername)}
	})

	fake.server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.server.Close)

	return fake
}

// URL is the base URL of the fake marketplace.
func (f *fakeGraphQL) URL() string {
	return f.server.URL + "/"
}

func (f *fakeGraphQL) handle(operation string, handler graphQLHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers[operation] = handler
}

// respond registers a handler that always returns data.
func (f *fakeGraphQL) respond(operation string, data interface{}) {
	f.handle(operation, func(graphQLCall) interface{} { return data })
}

// callsTo returns the calls made to operation, in order.
func (f *fakeGraphQL) callsTo(operation string) []graphQLCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var calls []graphQLCall

	for _, call := range f.calls {
		if call.Operation == operation {
			calls = append(calls, call)
		}
	}

	return calls
}

// operations returns every operation name received, in order.
func (f *fakeGraphQL) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		names = append(names, call.Operation)
	}

	return names
}

func (f *fakeGraphQL) serve(w http.ResponseWriter, r *http.Request) {
	assert.Equal(f.t, "/graphql", r.URL.Path)
	assert.Equal(f.t, http.MethodPost, r.Method)

	call, ok := f.parse(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	if cookie, err := r.Cookie("token"); err == nil {
		f.cookies = append(f.cookies, cookie.Value)
	}
	handler := f.handlers[call.Operation]
	f.mu.Unlock()

	if handler == nil {
		f.t.Errorf("unexpected operation %q", call.Operation)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"errors": []map[string]interface{}{{"message": "unknown operation " + call.Operation}},
		})

		return
	}

	result := handler(call)
	if reply, isReply := result.(graphQLReply); isReply {
		writeJSON(w, reply.Status, reply.Body)

		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": result})
}

func (f *fakeGraphQL) parse(r *http.Request) (graphQLCall, bool) {
	var payload struct {
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	var call graphQLCall

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err := r.ParseMultipartForm(1 << 20)
		if !assert.NoError(f.t, err) {
			return call, false
		}

		if !assert.NoError(f.t, json.Unmarshal([]byte(r.FormValue("operations")), &payload)) {
			return call, false
		}

		if !assert.NoError(f.t, json.Unmarshal([]byte(r.FormValue("map")), &call.FileMap)) {
			return call, false
		}

		keys := make([]string, 0, len(r.MultipartForm.File))
		for key := range r.MultipartForm.File {
			keys = append(keys, key)
		}

		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])

			return a < b
		})

		for _, key := range keys {
			call.Files = append(call.Files, r.MultipartForm.File[key][0].Filename)
		}
	} else {
		body, err := io.ReadAll(r.Body)
		if !assert.NoError(f.t, err) {
			return call, false
		}

		if !assert.NoError(f.t, json.Unmarshal(body, &payload)) {
			return call, false
		}
	}

	call.Operation = payload.OperationName
	call.Variables = payload.Variables

	return call, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// NewTestClient creates a session against baseURL without resolving the
// viewer; MeID is preset to testMeID.
func NewTestClient(baseURL string) *Client {
	return newTestClient(&playerok.Config{
		BaseURL:        baseURL,
		AccessToken:    testToken,
		UseIdentityMap: true,
	})
}

func newTestClient(config *playerok.Config) *Client {
	tokenManager := auth.NewStaticTokenManager(config.AccessToken)
	httpClient := internalhttp.NewClient(config.BaseURL, tokenManager)

	client := newClient(config, httpClient, tokenManager, "test-session")
	client.meID = testMeID

	return client
}

// newFakeSession starts a fake server and a session bound to it.
func newFakeSession(t *testing.T) (*fakeGraphQL, *Client) {
	t.Helper()

	fake := newFakeGraphQL(t)
	client := NewTestClient(fake.URL())

	t.Cleanup(func() { _ = client.Close(context.Background()) })

	return fake, client
}

func viewerData(id, username string) map[string]interface{} {
	return map[string]interface{}{
		"id":                 id,
		"username":           username,
		"email":              username + "@example.com",
		"role":               "USER",
		"unreadChatsCounter": 2,
		"createdAt":          "2024-01-02T03:04:05Z",
		"canPublishItems":    true,
		"__typename":         "Viewer",
	}
}

// connection builds a GraphQL connection object over nodes.
func connection(nodes []map[string]interface{}, hasNextPage bool, endCursor string) map[string]interface{} {
	edges := make([]map[string]interface{}, 0, len(nodes))
	for i, node := range nodes {
		edges = append(edges, map[string]interface{}{
			"node":   node,
			"cursor": endCursor + "#" + strconv.Itoa(i),
		})
	}

	var cursor interface{}
	if endCursor != "" {
		cursor = endCursor
	}

	return map[string]interface{}{
		"edges":      edges,
		"pageInfo":   map[string]interface{}{"hasNextPage": hasNextPage, "endCursor": cursor},
		"totalCount": len(nodes),
	}
}

// cursorOf returns the "after" variable of a paginated call, empty for the
// first page.
func cursorOf(call graphQLCall) string {
	pagination, _ := call.Variables["pagination"].(map[string]interface{})
	after, _ := pagination["after"].(string)

	return after
}

// firstOf returns the "first" variable of a paginated call.
func firstOf(call graphQLCall) int {
	pagination, _ := call.Variables["pagination"].(map[string]interface{})
	first, _ := pagination["first"].(float64)

	return int(first)
}

// filterOf returns the "filter" variable of a call.
func filterOf(call graphQLCall) map[string]interface{} {
	filter, _ := call.Variables["filter"].(map[string]interface{})

	return filter
}

// inputOf returns the "input" variable of a call.
func inputOf(call graphQLCall) map[string]interface{} {
	input, _ := call.Variables["input"].(map[string]interface{})

	return input
}
