package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Driver is the narrow slice of the graph database the store needs. Queries
// are always parameterized; only sanitized identifiers ever reach query text.
type Driver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}

// BoltDriver talks to Neo4j (or any Bolt-compatible store) through the
// official driver.
type BoltDriver struct {
	driver neo4j.DriverWithContext
}

func NewBoltDriver(ctx context.Context, uri, username, password string) (*BoltDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("graph store unreachable at %s: %w", uri, err)
	}
	return &BoltDriver{driver: driver}, nil
}

func (d *BoltDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *BoltDriver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}
