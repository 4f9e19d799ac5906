package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/docs"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/config"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/database"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
)

const (
	serverName = "neo4j-claims-fraud"

	investigationPromptName = "fraud-investigation-guide"

	shutdownTimeout = 5 * time.Second
)

// Neo4jMCPServer exposes the fraud analyses as MCP tools.
type Neo4jMCPServer struct {
	MCPServer *server.MCPServer
	config    *config.Config
	dbService database.Service
	anService analytics.Service
	source    graphsource.GraphSource
	catalog   *catalog.Catalog
	version   string
}

// NewNeo4jMCPServer wires the tool dependencies. Analyses read through a Neo4j graph source
// resolved against c.
func NewNeo4jMCPServer(version string, cfg *config.Config, dbService database.Service, anService analytics.Service, c *catalog.Catalog) *Neo4jMCPServer {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithInstructions("Graph analytics for auto insurance claims fraud. Start with the "+investigationPromptName+" prompt."),
	)

	return &Neo4jMCPServer{
		MCPServer: mcpServer,
		config:    cfg,
		dbService: dbService,
		anService: anService,
		source:    graphsource.NewNeo4jSource(dbService, c),
		catalog:   c,
		version:   version,
	}
}

// Start registers tools and prompts, then serves on the configured transport until ctx is
// cancelled or the transport fails.
func (s *Neo4jMCPServer) Start(ctx context.Context) error {
	if err := s.dbService.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to verify database connectivity: %w", err)
	}

	if err := s.registerTools(); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	s.registerPrompts()

	s.anService.EmitEvent(s.anService.NewStartupEvent(analytics.StartupEventInfo{
		Version:   s.version,
		Transport: s.config.Transport,
		ReadOnly:  s.config.ReadOnly,
	}))

	slog.Info("starting MCP server", "transport", s.config.Transport, "database", s.dbService.GetDatabaseName(), "read_only", s.config.ReadOnly)

	if s.config.Transport == config.TransportHTTP {
		return s.serveHTTP(ctx)
	}
	return server.NewStdioServer(s.MCPServer).Listen(ctx, os.Stdin, os.Stdout)
}

// Stop releases the database driver.
func (s *Neo4jMCPServer) Stop(ctx context.Context) error {
	slog.Info("stopping MCP server")
	return s.dbService.Close(ctx)
}

func (s *Neo4jMCPServer) serveHTTP(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.MCPServer))
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              s.config.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", s.config.HTTPAddr, "mcp", "/mcp", "metrics", "/metrics")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Neo4jMCPServer) registerPrompts() {
	prompt := mcp.NewPrompt(investigationPromptName,
		mcp.WithPromptDescription("Workflow and scoring guidance for investigating auto insurance claims fraud with these tools"),
	)
	s.MCPServer.AddPrompt(prompt, investigationGuideHandler)
}

func investigationGuideHandler(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return mcp.NewGetPromptResult(
		"Claims fraud investigation guide",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(docs.InvestigationGuidePrompt)),
		},
	), nil
}
