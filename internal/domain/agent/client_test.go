package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/falconrcm/console/internal/platform/gateway"
)

// The assistant lives under /ai on the backend; these paths are part of the
// wire contract and must not drift.
func TestClientTargetsAssistantPaths(t *testing.T) {
	var hits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	gw, err := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway.New: %v", err)
	}
	c := NewClient(gw)
	ctx := context.Background()

	c.Chat(ctx, ChatRequest{Message: "hi"})
	c.GetSession(ctx, "s1")
	c.DeleteSession(ctx, "s1")
	c.ProcessEncounter(ctx, "e1")
	c.Status(ctx)

	want := []string{
		"POST /ai/chat",
		"GET /ai/chat/sessions/s1",
		"DELETE /ai/chat/sessions/s1",
		"POST /ai/chat/process-encounter",
		"GET /ai/status",
	}
	if len(hits) != len(want) {
		t.Fatalf("hits = %v", hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("call %d hit %q, want %q", i, hits[i], want[i])
		}
	}
}
