package shopify

import "encoding/json"

// Connection is Shopify's paginated list shape: an object holding edges that
// each wrap a node. UnmarshalJSON also accepts {nodes: [...]} and plain JSON
// arrays, so flattening is idempotent and a field can switch between the
// connection and flat representations without breaking callers. Order is
// preserved in all cases.
type Connection[T any] struct {
	nodes []T
}

type connectionEnvelope[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
	Nodes []T `json:"nodes"`
}

func (c *Connection[T]) UnmarshalJSON(data []byte) error {
	// Already-flat list
	var flat []T
	if err := json.Unmarshal(data, &flat); err == nil {
		c.nodes = flat
		return nil
	}

	var env connectionEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if len(env.Edges) > 0 {
		nodes := make([]T, 0, len(env.Edges))
		for _, edge := range env.Edges {
			nodes = append(nodes, edge.Node)
		}
		c.nodes = nodes
		return nil
	}
	c.nodes = env.Nodes
	return nil
}

func (c Connection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Nodes())
}

// Nodes returns the flattened, ordered node list. Never nil.
func (c Connection[T]) Nodes() []T {
	if c.nodes == nil {
		return []T{}
	}
	return c.nodes
}

// FromNodes builds an already-flat connection, mainly for tests.
func FromNodes[T any](nodes []T) Connection[T] {
	return Connection[T]{nodes: nodes}
}
