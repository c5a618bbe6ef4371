package patient

import (
	"context"

	"github.com/falconrcm/console/internal/domain/encounter"
	"github.com/falconrcm/console/internal/platform/gateway"
	"github.com/falconrcm/console/internal/query"
)

// Bindings wire the patient client into the query layer.
type Bindings struct {
	client *Client
	cache  *query.Cache
	notif  query.Notifier
}

func NewBindings(client *Client, cache *query.Cache, notif query.Notifier) *Bindings {
	return &Bindings{client: client, cache: cache, notif: notif}
}

func (b *Bindings) List(ctx context.Context, p ListParams) (*gateway.Page[Patient], error) {
	key := query.ListKey("patients", p.values())
	return query.Read(ctx, b.cache, key, func(ctx context.Context) (*gateway.Page[Patient], error) {
		return b.client.List(ctx, p)
	})
}

func (b *Bindings) Get(ctx context.Context, id string) (*Patient, error) {
	return query.Read(ctx, b.cache, query.Key("patients", id), func(ctx context.Context) (*Patient, error) {
		return b.client.Get(ctx, id)
	})
}

func (b *Bindings) Encounters(ctx context.Context, id string) ([]encounter.Encounter, error) {
	key := query.Key("patients", id, "encounters")
	return query.Read(ctx, b.cache, key, func(ctx context.Context) ([]encounter.Encounter, error) {
		return b.client.Encounters(ctx, id)
	})
}

func (b *Bindings) Create(ctx context.Context, in CreateInput) (*Patient, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Patient Created",
			SuccessBody:   "Patient has been successfully created.",
			ErrorTitle:    "Creation Failed",
			ErrorFallback: "Failed to create patient.",
		},
		func(ctx context.Context) (*Patient, error) { return b.client.Create(ctx, in) },
		func(*Patient) []string { return []string{"patients"} },
	)
}

func (b *Bindings) Update(ctx context.Context, id string, in CreateInput) (*Patient, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Patient Updated",
			SuccessBody:   "Patient information has been successfully updated.",
			ErrorTitle:    "Update Failed",
			ErrorFallback: "Failed to update patient.",
		},
		func(ctx context.Context) (*Patient, error) { return b.client.Update(ctx, id, in) },
		func(*Patient) []string { return []string{"patients"} },
	)
}

func (b *Bindings) Delete(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Patient Deleted",
			SuccessBody:   "Patient has been successfully deleted.",
			ErrorTitle:    "Deletion Failed",
			ErrorFallback: "Failed to delete patient.",
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, b.client.Delete(ctx, id)
		},
		func(struct{}) []string { return []string{"patients"} },
	)
	return err
}
