// Package identifier mints unique string IDs for persisted records.
package identifier

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Generator issues snowflake IDs. Node IDs must be unique per process when
// several instances share a database.
type Generator struct {
	node *snowflake.Node
}

func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

func (g *Generator) NewID(_ context.Context) (string, error) {
	return g.node.Generate().String(), nil
}

// SystemClock satisfies the per-service Clock ports with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
