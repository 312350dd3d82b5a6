package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
	"github.com/fivetwenty-io/playerok-client/internal/http"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// Static errors for err113 compliance.
var (
	ErrMalformedResponse = errors.New("malformed GraphQL response")
)

// Error codes the marketplace uses for a rejected session.
var unauthorizedCodes = map[string]struct{}{
	"UNAUTHENTICATED": {},
	"UNAUTHORIZED":    {},
	"FORBIDDEN":       {},
}

// Transport is the part of the HTTP client the executor needs.
type Transport interface {
	Post(ctx context.Context, path string, body interface{}) (*http.Response, error)
	PostMultipart(ctx context.Context, path string, form *http.Multipart) (*http.Response, error)
}

// Upload is a file attached to an operation. Variable is the dotted path of
// the Upload variable it fills, e.g. "file" or "attachments.0"; the
// variable itself must be nil in the operation's Variables.
type Upload struct {
	Variable string
	FileName string
	Reader   io.Reader
}

// Executor runs operations against the GraphQL endpoint and decodes the
// data object of the response.
type Executor struct {
	transport Transport
	hashes    map[string]string
	logger    playerok.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithPersistedQueries sends the listed operations by hash only.
func WithPersistedQueries(hashes map[string]string) Option {
	return func(e *Executor) {
		e.hashes = hashes
	}
}

// WithLogger sets the logger.
func WithLogger(logger playerok.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an executor over transport.
func NewExecutor(transport Transport, opts ...Option) *Executor {
	executor := &Executor{
		transport: transport,
		logger:    playerok.NopLogger{},
	}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute runs op and decodes the response data into out. A nil out
// discards the data.
func (e *Executor) Execute(ctx context.Context, op Operation, vars Variables, out interface{}) error {
	payload := NewPayload(op, vars, e.hashes)

	e.logger.Debug("GraphQL operation", map[string]interface{}{
		"operation": op.Name,
		"persisted": payload.Extensions != nil,
	})

	resp, err := e.transport.Post(ctx, constants.GraphQLPath, payload)
	if err != nil {
		return annotate(op.Name, err)
	}

	return decode(op.Name, resp, out)
}

// Upload runs op as a GraphQL multipart request carrying files.
func (e *Executor) Upload(ctx context.Context, op Operation, vars Variables, files []Upload, out interface{}) error {
	if len(files) == 0 {
		return e.Execute(ctx, op, vars, out)
	}

	operations, err := json.Marshal(NewPayload(op, vars, e.hashes))
	if err != nil {
		return fmt.Errorf("marshaling %s operations: %w", op.Name, err)
	}

	fileMap := make(map[string][]string, len(files))
	parts := make([]http.FormFile, 0, len(files))

	for i, file := range files {
		key := strconv.Itoa(i + 1)
		fileMap[key] = []string{"variables." + file.Variable}
		parts = append(parts, http.FormFile{Field: key, FileName: file.FileName, Reader: file.Reader})
	}

	mapJSON, err := json.Marshal(fileMap)
	if err != nil {
		return fmt.Errorf("marshaling %s file map: %w", op.Name, err)
	}

	e.logger.Debug("GraphQL upload", map[string]interface{}{
		"operation": op.Name,
		"files":     len(files),
	})

	resp, err := e.transport.PostMultipart(ctx, constants.GraphQLPath, &http.Multipart{
		Fields: []http.FormField{
			{Name: "operations", Value: string(operations)},
			{Name: "map", Value: string(mapJSON)},
		},
		Files: parts,
	})
	if err != nil {
		return annotate(op.Name, err)
	}

	return decode(op.Name, resp, out)
}

type envelope struct {
	Data   json.RawMessage         `json:"data"`
	Errors []playerok.GraphQLError `json:"errors"`
}

func decode(operation string, resp *http.Response, out interface{}) error {
	var env envelope

	err := json.Unmarshal(resp.Body, &env)
	if err != nil {
		return &playerok.UpstreamError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %w", ErrMalformedResponse, err),
		}
	}

	if len(env.Errors) > 0 {
		return errorsToUpstream(operation, resp.StatusCode, env.Errors)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	err = json.Unmarshal(env.Data, out)
	if err != nil {
		return &playerok.UpstreamError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: decoding data: %w", ErrMalformedResponse, err),
		}
	}

	return nil
}

func errorsToUpstream(operation string, statusCode int, gqlErrors []playerok.GraphQLError) error {
	upstreamErr := &playerok.UpstreamError{
		Operation:  operation,
		StatusCode: statusCode,
		Errors:     gqlErrors,
	}

	for _, gqlErr := range gqlErrors {
		if _, ok := unauthorizedCodes[gqlErr.Code()]; ok {
			upstreamErr.Err = playerok.ErrUnauthorized

			break
		}
	}

	return upstreamErr
}

// annotate records the operation on transport errors that lack one.
func annotate(operation string, err error) error {
	upstreamErr := &playerok.UpstreamError{}
	if errors.As(err, &upstreamErr) && upstreamErr.Operation == "" {
		upstreamErr.Operation = operation
	}

	networkErr := &playerok.NetworkError{}
	if errors.As(err, &networkErr) && networkErr.Operation == "" {
		networkErr.Operation = operation
	}

	return err
}
