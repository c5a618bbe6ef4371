package query

import (
	"context"

	"github.com/falconrcm/console/internal/platform/gateway"
)

// Notifier is the slice of the UI signal store the write bindings need.
// Satisfied by *uistate.Store.
type Notifier interface {
	Success(title, message string) string
	Error(title, message string) string
}

// Messages are the per-operation notification texts. ErrorFallback is used
// when the server supplies no detail string.
type Messages struct {
	SuccessTitle  string
	SuccessBody   string
	ErrorTitle    string
	ErrorFallback string
}

// Mutate runs a write binding: on success it invalidates the key families
// the write could have affected (computed from the result, so e.g. a created
// encounter can invalidate its patient's sub-list) and emits a success
// notification; on failure it emits an error notification and returns the
// error. Failures are communicated transiently, never retained, and never
// retried here — re-invoking is the caller's decision.
func Mutate[T any](
	ctx context.Context,
	c *Cache,
	notif Notifier,
	msg Messages,
	fn func(ctx context.Context) (T, error),
	keys func(result T) []string,
) (T, error) {
	result, err := fn(ctx)
	if err != nil {
		if notif != nil {
			notif.Error(msg.ErrorTitle, gateway.ErrorDetail(err, msg.ErrorFallback))
		}
		return result, err
	}
	if keys != nil {
		if ks := keys(result); len(ks) > 0 {
			c.Invalidate(ks...)
		}
	}
	if notif != nil && msg.SuccessTitle != "" {
		notif.Success(msg.SuccessTitle, msg.SuccessBody)
	}
	return result, nil
}
