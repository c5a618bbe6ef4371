package encounter

import (
	"context"

	"github.com/falconrcm/console/internal/platform/gateway"
	"github.com/falconrcm/console/internal/query"
)

// Bindings wire the encounter client into the query layer: cached reads,
// and writes that invalidate the affected key families and notify.
type Bindings struct {
	client *Client
	cache  *query.Cache
	notif  query.Notifier
}

func NewBindings(client *Client, cache *query.Cache, notif query.Notifier) *Bindings {
	return &Bindings{client: client, cache: cache, notif: notif}
}

func (b *Bindings) List(ctx context.Context, p ListParams) (*gateway.Page[Encounter], error) {
	key := query.ListKey("encounters", p.values())
	return query.Read(ctx, b.cache, key, func(ctx context.Context) (*gateway.Page[Encounter], error) {
		return b.client.List(ctx, p)
	})
}

func (b *Bindings) Get(ctx context.Context, id string) (*Encounter, error) {
	return query.Read(ctx, b.cache, query.Key("encounters", id), func(ctx context.Context) (*Encounter, error) {
		return b.client.Get(ctx, id)
	})
}

// Create invalidates the global encounters family and, because the new
// encounter belongs to a patient, that patient's encounter sub-list.
func (b *Bindings) Create(ctx context.Context, in CreateInput) (*Encounter, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Encounter Created",
			SuccessBody:   "Encounter has been successfully created.",
			ErrorTitle:    "Creation Failed",
			ErrorFallback: "Failed to create encounter.",
		},
		func(ctx context.Context) (*Encounter, error) { return b.client.Create(ctx, in) },
		func(e *Encounter) []string {
			keys := []string{"encounters"}
			if e != nil && e.PatientID != "" {
				keys = append(keys, query.Key("patients", e.PatientID, "encounters"))
			}
			return keys
		},
	)
}

func (b *Bindings) Update(ctx context.Context, id string, in CreateInput) (*Encounter, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Encounter Updated",
			SuccessBody:   "Encounter has been successfully updated.",
			ErrorTitle:    "Update Failed",
			ErrorFallback: "Failed to update encounter.",
		},
		func(ctx context.Context) (*Encounter, error) { return b.client.Update(ctx, id, in) },
		func(*Encounter) []string { return []string{"encounters"} },
	)
}

func (b *Bindings) Process(ctx context.Context, id string, forceReprocess bool) (*ProcessResult, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Processing Complete",
			SuccessBody:   "Encounter has been processed by AI.",
			ErrorTitle:    "Processing Failed",
			ErrorFallback: "Failed to process encounter.",
		},
		func(ctx context.Context) (*ProcessResult, error) { return b.client.Process(ctx, id, forceReprocess) },
		func(r *ProcessResult) []string {
			keys := []string{"encounters"}
			if r != nil && r.PatientID != "" {
				keys = append(keys, query.Key("patients", r.PatientID, "encounters"))
			}
			return keys
		},
	)
}
