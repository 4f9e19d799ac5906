//go:build integration

package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/mock/gomock"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/centrality"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/claimrisk"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/community"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/graph"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/patterns"
	analytics_mocks "github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/claim_risk"
)

func TestRecycledPassengerFromNeo4j(t *testing.T) {
	seed(t, mustScenario(t, scenario.RecycledPassenger))

	g, err := graph.Load(context.Background(), source)
	if err != nil {
		t.Fatalf("failed to load graph: %v", err)
	}
	if g.Len() != 10 || len(g.Edges()) != 12 {
		t.Fatalf("expected 10 nodes and 12 edges, got %d and %d", g.Len(), len(g.Edges()))
	}

	reports := community.Detect(g)
	if len(reports) != 1 {
		t.Fatalf("expected 1 community, got %d", len(reports))
	}
	if reports[0].Size != 10 || reports[0].FlaggedCount != 4 {
		t.Errorf("unexpected community: size %d flagged %d", reports[0].Size, reports[0].FlaggedCount)
	}

	ranked := centrality.Analyzer{}.Rank(g)
	if ranked[0].ID != "CLM-101" {
		t.Errorf("expected CLM-101 to rank first, got %s", ranked[0].ID)
	}
}

func TestSharedShopFixtureFromNeo4j(t *testing.T) {
	s, err := scenario.LoadFixture("../../internal/scenario/testdata/shared_shop.yaml")
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	seed(t, s)
	ctx := context.Background()

	matches, err := patterns.Detector{Source: source}.Detect(ctx)
	if err != nil {
		t.Fatalf("pattern detection failed: %v", err)
	}
	if len(matches) != 1 || matches[0].EntityID != "S-1" || matches[0].RiskLevel != patterns.RiskHigh {
		t.Fatalf("expected one HIGH match on S-1, got %+v", matches)
	}

	report, err := claimrisk.Scorer{Source: source}.Score(ctx, "CLM-1")
	if err != nil {
		t.Fatalf("claim scoring failed: %v", err)
	}
	if report == nil {
		t.Fatal("expected CLM-1 to be found")
	}
	if report.RiskScore != 55 || report.ShopClaimCount != 5 {
		t.Errorf("expected score 55 with 5 other shop claims, got %d and %d", report.RiskScore, report.ShopClaimCount)
	}
}

func TestLatentWitnessEgoNetworkFromNeo4j(t *testing.T) {
	seed(t, mustScenario(t, scenario.LatentWitness))

	ego, err := source.FetchEgoNetwork(context.Background(), "PH-555", 1, 0)
	if err != nil {
		t.Fatalf("ego network failed: %v", err)
	}
	if len(ego.Nodes) != 3 || len(ego.Edges) != 2 {
		t.Errorf("expected 3 nodes and 2 edges, got %d and %d", len(ego.Nodes), len(ego.Edges))
	}
	if ego.Nodes[0].ID != "PH-555" {
		t.Errorf("expected the centre first, got %s", ego.Nodes[0].ID)
	}
}

func TestScoreClaimToolAgainstNeo4j(t *testing.T) {
	seed(t, mustScenario(t, scenario.FalsePositiveContext))

	ctrl := gomock.NewController(t)
	an := analytics_mocks.NewMockService(ctrl)
	an.EXPECT().NewToolsEvent("score-claim").AnyTimes()
	an.EXPECT().EmitEvent(gomock.Any()).AnyTimes()

	deps := &tools.ToolDependencies{DBService: db, AnalyticsService: an, Source: source}
	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{"claimId": "CLM-999"}

	result, err := claim_risk.Handler(deps)(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned an error: %+v", result.Content)
	}
	text := result.Content[0].(mcp.TextContent).Text
	if !strings.Contains(text, `"claim_id": "CLM-999"`) || !strings.Contains(text, `"risk_level": "LOW"`) {
		t.Errorf("unexpected response: %s", text)
	}
}
