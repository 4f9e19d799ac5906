package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/centrality"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/claimrisk"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/community"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/graph"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/patterns"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/database"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/metrics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/tools"
)

type analyzeOptions struct {
	fixture  string
	scenario int
	claimID  string
	top      int
}

// Report is the combined output of the analyze command.
type Report struct {
	Source      string                      `json:"source"`
	NodeCount   int                         `json:"node_count"`
	EdgeCount   int                         `json:"edge_count"`
	Communities []community.Report          `json:"communities"`
	Central     []centrality.NodeCentrality `json:"central_entities"`
	Patterns    []patterns.Match            `json:"patterns"`
	Claim       *claimrisk.Report           `json:"claim,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run every analysis and print a JSON report",
		Long: `Runs community detection, centrality ranking and collusion pattern detection, and
optionally scores one claim. With --fixture or --scenario the analysis runs offline on an
in-memory graph; otherwise it reads from the configured Neo4j database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.fixture != "" && opts.scenario != 0 {
				return errors.New("--fixture and --scenario are mutually exclusive")
			}
			if opts.top < 0 {
				return errors.New("--top must not be negative")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			src, name, closeFn, err := openSource(cmd.Context(), opts, cfg.URI, cfg.Username, cfg.Password, cfg.Database)
			if err != nil {
				return err
			}
			defer closeFn()

			analyzer := centrality.Analyzer{SampleSize: cfg.CentralitySampleSize, Seed: cfg.CentralitySeed}
			report, err := buildReport(cmd.Context(), src, analyzer, opts)
			if err != nil {
				return err
			}
			report.Source = name
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "YAML or JSON fixture file to analyse offline")
	cmd.Flags().IntVar(&opts.scenario, "scenario", 0, "built-in scenario to analyse offline (1, 2 or 3)")
	cmd.Flags().StringVar(&opts.claimID, "claim", "", "claim id to score")
	cmd.Flags().IntVar(&opts.top, "top", 10, "number of central entities to report")
	return cmd
}

// openSource picks the in-memory source for fixtures and scenarios, and Neo4j otherwise.
func openSource(ctx context.Context, opts analyzeOptions, uri, username, password, dbName string) (graphsource.GraphSource, string, func(), error) {
	noop := func() {}

	switch {
	case opts.fixture != "":
		s, err := scenario.LoadFixture(opts.fixture)
		if err != nil {
			return nil, "", noop, err
		}
		return s.Source(), s.Name, noop, nil
	case opts.scenario != 0:
		s, err := scenario.Get(opts.scenario)
		if err != nil {
			return nil, "", noop, err
		}
		return s.Source(), s.Name, noop, nil
	}

	db, err := database.Connect(ctx, uri, username, password, dbName)
	if err != nil {
		return nil, "", noop, err
	}
	c, err := catalog.Load(tools.ConfigFiles, catalogueDir)
	if err != nil {
		_ = db.Close(context.Background())
		return nil, "", noop, err
	}
	closeFn := func() { _ = db.Close(context.Background()) }
	return graphsource.NewNeo4jSource(db, c), db.GetDatabaseName(), closeFn, nil
}

func buildReport(ctx context.Context, src graphsource.GraphSource, analyzer centrality.Analyzer, opts analyzeOptions) (*Report, error) {
	g, err := graph.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	report := &Report{
		NodeCount: g.Len(),
		EdgeCount: len(g.Edges()),
	}

	start := time.Now()
	report.Communities = community.Detect(g)
	metrics.ObserveAnalysis("communities", start)

	start = time.Now()
	ranked := analyzer.Rank(g)
	metrics.ObserveAnalysis("centrality", start)
	if len(ranked) > opts.top {
		ranked = ranked[:opts.top]
	}
	report.Central = ranked

	start = time.Now()
	report.Patterns, err = patterns.Detector{Source: src}.Detect(ctx)
	metrics.ObserveAnalysis("collusion", start)
	if err != nil {
		return nil, err
	}

	if opts.claimID != "" {
		start = time.Now()
		report.Claim, err = claimrisk.Scorer{Source: src}.Score(ctx, opts.claimID)
		metrics.ObserveAnalysis("claim_risk", start)
		if err != nil {
			return nil, err
		}
		if report.Claim == nil {
			return nil, fmt.Errorf("claim %s not found", opts.claimID)
		}
	}

	return report, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
