package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jService runs queries through a shared driver against one database.
type Neo4jService struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jService wraps an existing driver.
func NewNeo4jService(driver neo4j.DriverWithContext, database string) *Neo4jService {
	return &Neo4jService{driver: driver, database: database}
}

// Connect creates a driver with basic auth and verifies it can reach the server.
func Connect(ctx context.Context, uri, username, password, database string) (*Neo4jService, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	s := NewNeo4jService(driver, database)
	if err := s.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	slog.Info("connected to neo4j", "uri", uri, "database", database)
	return s, nil
}

func (s *Neo4jService) VerifyConnectivity(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return nil
}

// ExecuteReadQuery runs cypher on a reader with eager result collection.
func (s *Neo4jService) ExecuteReadQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		slog.Error("read query failed", "database", s.database, "error", err)
		return nil, wrapQueryError("read", err)
	}
	return res.Records, nil
}

// ExecuteWriteQuery runs cypher on the writer.
func (s *Neo4jService) ExecuteWriteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithWritersRouting(),
	)
	if err != nil {
		slog.Error("write query failed", "database", s.database, "error", err)
		return nil, wrapQueryError("write", err)
	}
	return res.Records, nil
}

func (s *Neo4jService) GetDatabaseName() string {
	return s.database
}

func (s *Neo4jService) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func wrapQueryError(kind string, err error) error {
	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: failed to execute %s query: %w", ErrConnectivity, kind, err)
	}
	return fmt.Errorf("failed to execute %s query: %w", kind, err)
}
