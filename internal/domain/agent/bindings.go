package agent

import (
	"context"

	"github.com/falconrcm/console/internal/query"
)

// Bindings wire the agent client into the query layer.
type Bindings struct {
	client *Client
	cache  *query.Cache
	notif  query.Notifier
}

func NewBindings(client *Client, cache *query.Cache, notif query.Notifier) *Bindings {
	return &Bindings{client: client, cache: cache, notif: notif}
}

// Chat sends one conversational turn. The reply renders inline in the chat
// surface, so only failures produce a notification, and nothing is
// invalidated: conversation does not change resource data.
func (b *Bindings) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			ErrorTitle:    "Chat Failed",
			ErrorFallback: "Failed to reach the AI assistant.",
		},
		func(ctx context.Context) (*ChatResponse, error) { return b.client.Chat(ctx, req) },
		nil,
	)
}

func (b *Bindings) Session(ctx context.Context, id string) (*ChatSession, error) {
	key := query.Key("agent", "sessions", id)
	return query.Read(ctx, b.cache, key, func(ctx context.Context) (*ChatSession, error) {
		return b.client.GetSession(ctx, id)
	})
}

func (b *Bindings) DeleteSession(ctx context.Context, id string) error {
	if err := b.client.DeleteSession(ctx, id); err != nil {
		return err
	}
	b.cache.Invalidate(query.Key("agent", "sessions", id))
	return nil
}

func (b *Bindings) Status(ctx context.Context) (*Status, error) {
	return query.Read(ctx, b.cache, query.Key("agent", "status"), func(ctx context.Context) (*Status, error) {
		return b.client.Status(ctx)
	})
}

// ProcessEncounter routes an encounter through the agent and refreshes the
// encounter key family with the extracted codes.
func (b *Bindings) ProcessEncounter(ctx context.Context, encounterID string) (*ProcessResult, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "AI Processing Complete",
			SuccessBody:   "Encounter has been processed by AI.",
			ErrorTitle:    "Processing Failed",
			ErrorFallback: "Failed to process encounter.",
		},
		func(ctx context.Context) (*ProcessResult, error) { return b.client.ProcessEncounter(ctx, encounterID) },
		func(*ProcessResult) []string { return []string{"encounters"} },
	)
}
