package graphql

// persistedQueryVersion is the only version of the automatic persisted
// queries protocol.
const persistedQueryVersion = 1

// PersistedQuery references a query document the server already knows.
type PersistedQuery struct {
	Version    int    `json:"version"`
	SHA256Hash string `json:"sha256Hash"`
}

// Extensions is the extensions object of a request payload.
type Extensions struct {
	PersistedQuery *PersistedQuery `json:"persistedQuery,omitempty"`
}

// Payload is the JSON body of one GraphQL request.
type Payload struct {
	OperationName string      `json:"operationName"`
	Variables     Variables   `json:"variables"`
	Query         string      `json:"query,omitempty"`
	Extensions    *Extensions `json:"extensions,omitempty"`
}

// NewPayload builds the request body for op. When hashes has an entry for
// the operation only the hash is sent; otherwise the full document is.
func NewPayload(op Operation, vars Variables, hashes map[string]string) *Payload {
	if vars == nil {
		vars = Variables{}
	}

	payload := &Payload{
		OperationName: op.Name,
		Variables:     vars,
	}

	if hash, ok := hashes[op.Name]; ok && hash != "" {
		payload.Extensions = &Extensions{
			PersistedQuery: &PersistedQuery{Version: persistedQueryVersion, SHA256Hash: hash},
		}

		return payload
	}

	payload.Query = op.Query

	return payload
}
