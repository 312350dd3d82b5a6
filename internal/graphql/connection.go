package graphql

import "github.com/fivetwenty-io/playerok-client/pkg/playerok"

// Edge is one edge of a relay connection.
type Edge[T any] struct {
	Node   *T     `json:"node"`
	Cursor string `json:"cursor"`
}

// Connection is a relay-style page: edges, pageInfo and totalCount.
type Connection[T any] struct {
	Edges      []Edge[T]         `json:"edges"`
	PageInfo   playerok.PageInfo `json:"pageInfo"`
	TotalCount int               `json:"totalCount"`
}

// Nodes returns the nodes of the page in server order, skipping null edges.
func (c *Connection[T]) Nodes() []T {
	if c == nil {
		return nil
	}

	nodes := make([]T, 0, len(c.Edges))

	for _, edge := range c.Edges {
		if edge.Node != nil {
			nodes = append(nodes, *edge.Node)
		}
	}

	return nodes
}

// Page converts the connection for a playerok.Pager. A nil connection is a
// nil page, which ends pagination.
func (c *Connection[T]) Page() *playerok.Page[T] {
	if c == nil {
		return nil
	}

	return &playerok.Page[T]{
		Records:    c.Nodes(),
		PageInfo:   c.PageInfo,
		TotalCount: c.TotalCount,
	}
}
