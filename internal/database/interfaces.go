package database

//go:generate mockgen -destination=mocks/mock_database.go -package=database_mocks github.com/mkd-neo4j/neo4j-claims-fraud/internal/database Service

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ErrConnectivity wraps driver errors caused by an unreachable or unauthenticated server.
var ErrConnectivity = errors.New("neo4j connectivity failure")

// Service is the narrow query surface the rest of the module uses against Neo4j.
type Service interface {
	VerifyConnectivity(ctx context.Context) error
	ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	ExecuteWriteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	GetDatabaseName() string
	Close(ctx context.Context) error
}
