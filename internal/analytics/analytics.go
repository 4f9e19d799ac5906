// Package analytics records anonymous usage events. Tool events always feed the Prometheus
// tool counter; events are only posted to the telemetry endpoint when enabled.
package analytics

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/metrics"
)

const (
	eventStartup = "CLAIMS_FRAUD_STARTUP"
	eventTools   = "CLAIMS_FRAUD_TOOL_USED"
)

type TrackEvent struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

type StartupEventInfo struct {
	Version   string
	Transport string
	ReadOnly  bool
}

type Analytics struct {
	enabled    atomic.Bool
	endpoint   string
	client     HTTPClient
	distinctID string
}

// NewAnalytics creates a disabled service posting to endpoint through client.
func NewAnalytics(endpoint string, client HTTPClient) *Analytics {
	return &Analytics{
		endpoint:   endpoint,
		client:     client,
		distinctID: uuid.NewString(),
	}
}

func (a *Analytics) Enable() {
	a.enabled.Store(true)
}

func (a *Analytics) Disable() {
	a.enabled.Store(false)
}

func (a *Analytics) EmitEvent(event TrackEvent) {
	if event.Event == eventTools {
		if tool, ok := event.Properties["tool"].(string); ok {
			metrics.ToolCalls.WithLabelValues(tool).Inc()
		}
	}

	if !a.enabled.Load() || a.endpoint == "" || a.client == nil {
		return
	}

	body, err := json.Marshal([]TrackEvent{event})
	if err != nil {
		slog.Debug("failed to encode analytics event", "event", event.Event, "error", err)
		return
	}

	resp, err := a.client.Post(a.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Debug("failed to send analytics event", "event", event.Event, "error", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		slog.Debug("analytics endpoint rejected event", "event", event.Event, "status", resp.StatusCode)
	}
}

func (a *Analytics) NewStartupEvent(info StartupEventInfo) TrackEvent {
	props := a.baseProperties()
	props["version"] = info.Version
	props["transport"] = info.Transport
	props["read_only"] = info.ReadOnly
	props["os"] = runtime.GOOS
	props["arch"] = runtime.GOARCH
	return TrackEvent{Event: eventStartup, Properties: props}
}

func (a *Analytics) NewToolsEvent(toolsUsed string) TrackEvent {
	props := a.baseProperties()
	props["tool"] = toolsUsed
	return TrackEvent{Event: eventTools, Properties: props}
}

func (a *Analytics) baseProperties() map[string]any {
	return map[string]any{
		"distinct_id": a.distinctID,
		"$insert_id":  uuid.NewString(),
		"time":        time.Now().Unix(),
	}
}
