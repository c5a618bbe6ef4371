package claim

import (
	"context"

	"github.com/falconrcm/console/internal/platform/gateway"
	"github.com/falconrcm/console/internal/query"
)

// Bindings wire the claim client into the query layer.
type Bindings struct {
	client *Client
	cache  *query.Cache
	notif  query.Notifier
}

func NewBindings(client *Client, cache *query.Cache, notif query.Notifier) *Bindings {
	return &Bindings{client: client, cache: cache, notif: notif}
}

func (b *Bindings) List(ctx context.Context, p ListParams) (*gateway.Page[Claim], error) {
	key := query.ListKey("claims", p.values())
	return query.Read(ctx, b.cache, key, func(ctx context.Context) (*gateway.Page[Claim], error) {
		return b.client.List(ctx, p)
	})
}

func (b *Bindings) Get(ctx context.Context, id string) (*Claim, error) {
	return query.Read(ctx, b.cache, query.Key("claims", id), func(ctx context.Context) (*Claim, error) {
		return b.client.Get(ctx, id)
	})
}

func (b *Bindings) Denials(ctx context.Context, id string) ([]Denial, error) {
	key := query.Key("claims", id, "denials")
	return query.Read(ctx, b.cache, key, func(ctx context.Context) ([]Denial, error) {
		return b.client.Denials(ctx, id)
	})
}

func (b *Bindings) Create(ctx context.Context, in CreateInput) (*Claim, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Claim Created",
			SuccessBody:   "Claim has been successfully created.",
			ErrorTitle:    "Creation Failed",
			ErrorFallback: "Failed to create claim.",
		},
		func(ctx context.Context) (*Claim, error) { return b.client.Create(ctx, in) },
		func(*Claim) []string { return []string{"claims"} },
	)
}

func (b *Bindings) Update(ctx context.Context, id string, in CreateInput) (*Claim, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Claim Updated",
			SuccessBody:   "Claim has been successfully updated.",
			ErrorTitle:    "Update Failed",
			ErrorFallback: "Failed to update claim.",
		},
		func(ctx context.Context) (*Claim, error) { return b.client.Update(ctx, id, in) },
		func(*Claim) []string { return []string{"claims"} },
	)
}

func (b *Bindings) Submit(ctx context.Context, id string) (*Claim, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Claim Submitted",
			SuccessBody:   "Claim has been submitted to the payer.",
			ErrorTitle:    "Submission Failed",
			ErrorFallback: "Failed to submit claim.",
		},
		func(ctx context.Context) (*Claim, error) { return b.client.Submit(ctx, id) },
		func(*Claim) []string { return []string{"claims"} },
	)
}

// CheckEligibility is a verification action: it notifies on both outcomes
// but leaves the cache untouched, since no claim data changes.
func (b *Bindings) CheckEligibility(ctx context.Context, req EligibilityRequest) (*EligibilityResult, error) {
	return query.Mutate(ctx, b.cache, b.notif,
		query.Messages{
			SuccessTitle:  "Eligibility Verified",
			SuccessBody:   "Eligibility check completed.",
			ErrorTitle:    "Eligibility Check Failed",
			ErrorFallback: "Failed to verify eligibility.",
		},
		func(ctx context.Context) (*EligibilityResult, error) { return b.client.CheckEligibility(ctx, req) },
		nil,
	)
}
