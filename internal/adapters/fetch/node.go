package fetch

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the fetch client Graft node.
const NodeID graft.ID = "adapter.fetch_client"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Client, error) {
			return NewClient(nil), nil
		},
	})
}
