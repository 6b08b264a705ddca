package api

import (
	"context"

	"github.com/justnitesh531/orderflow/domain"
)

// DraftService abstracts the draft aggregate operations for handlers.
type DraftService interface {
	AddItem(ctx context.Context, name, quantity, addedBy string) (domain.Item, error)
	GetDraft(ctx context.Context) (domain.Draft, error)
	RemoveItem(ctx context.Context, id string) (*domain.Item, error)
	RemoveItemAt(ctx context.Context, index int) (*domain.Item, error)
	ClearDraft(ctx context.Context) error
}

// Deduper prevents reprocessing of retried add requests.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, key string) (bool, error)
	// Remove deletes a previously added key, used when downstream processing fails.
	Remove(ctx context.Context, key string) error
}
