package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/config"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/database"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/server"
	"github.com/mkd-neo4j/neo4j-claims-fraud/tools"
)

const catalogueDir = "tools/config/patterns"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "claims-fraud",
		Short:         "Graph analytics for auto insurance claims fraud",
		Long:          "claims-fraud detects collusion rings, central entities and risky claims in a Neo4j claims graph, as an MCP server or from the command line.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd(), newSeedCmd(), newAnalyzeCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	var (
		transport string
		addr      string
		readOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio or streamable HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			if cmd.Flags().Changed("read-only") {
				cfg.ReadOnly = readOnly
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := database.Connect(ctx, cfg.URI, cfg.Username, cfg.Password, cfg.Database)
			if err != nil {
				return err
			}

			c, err := catalog.Load(tools.ConfigFiles, catalogueDir)
			if err != nil {
				_ = db.Close(context.Background())
				return err
			}

			an := analytics.NewAnalytics(cfg.TelemetryEndpoint, http.DefaultClient)
			if cfg.Telemetry {
				an.Enable()
			}

			srv := server.NewNeo4jMCPServer(version, cfg, db, an, c)
			defer func() {
				if err := srv.Stop(context.Background()); err != nil {
					slog.Error("failed to stop server", "error", err)
				}
			}()
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "transport to serve on (stdio or http)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address for the http transport")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "expose only read-only tools")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <scenario>",
		Short: "Replace the database contents with a built-in scenario (1, 2 or 3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("scenario must be a number: %w", err)
			}
			s, err := scenario.Get(id)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.ReadOnly {
				return fmt.Errorf("seeding is disabled in read-only mode")
			}

			db, err := database.Connect(cmd.Context(), cfg.URI, cfg.Username, cfg.Password, cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(context.Background()) }()

			seeder := &scenario.Seeder{DB: db}
			result, err := seeder.Seed(cmd.Context(), s)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

// loadConfig reads the configuration and installs its logger as the default. Logs go to
// stderr so stdout stays free for the stdio transport and JSON reports.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))
	slog.Debug("configuration loaded", "config", cfg)
	return cfg, nil
}
