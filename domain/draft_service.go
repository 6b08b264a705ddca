package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DraftStore defines the persistence operations the draft aggregate needs.
// LoadDraft returns the draft together with an opaque concurrency tag; a
// draft that was never persisted loads as the empty default with an empty
// tag. SaveDraft persists the full draft and must fail with
// ErrConcurrencyConflict when the tag no longer matches the stored state.
type DraftStore interface {
	LoadDraft(ctx context.Context) (Draft, string, error)
	SaveDraft(ctx context.Context, draft Draft, etag string) error
	ResetDraft(ctx context.Context) error
}

// maxSaveAttempts bounds the compare-and-swap retry loop on concurrent edits.
const maxSaveAttempts = 4

// DraftService implements the draft aggregate operations over a DraftStore.
type DraftService struct {
	store DraftStore
	now   func() time.Time
	newID func() string
}

// NewDraftService creates a DraftService backed by the given store.
func NewDraftService(store DraftStore) *DraftService {
	if store == nil {
		panic("domain.NewDraftService: store is nil")
	}
	return &DraftService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// AddItem validates and categorizes a new item, appends it to the draft and
// persists the result. The returned item carries the resolved category so
// callers can report it.
func (s *DraftService) AddItem(ctx context.Context, name, quantity, addedBy string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyName
	}
	addedBy = strings.TrimSpace(addedBy)
	if addedBy == "" {
		return Item{}, ErrEmptyAddedBy
	}

	item := Item{
		ID:       s.newID(),
		Name:     name,
		Quantity: strings.TrimSpace(quantity),
		Category: Categorize(name),
		AddedBy:  addedBy,
		AddedAt:  s.now(),
	}

	err := s.update(ctx, func(d *Draft) error {
		d.Items = append(d.Items, item)
		return nil
	})
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

// GetDraft returns the current draft. A draft that does not exist yet reads
// as empty; reading never creates persisted state.
func (s *DraftService) GetDraft(ctx context.Context) (Draft, error) {
	draft, _, err := s.store.LoadDraft(ctx)
	if err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// RemoveItemAt removes the item at the given zero-based position in the
// full item sequence. Out-of-range positions leave the draft unchanged and
// return ErrItemNotFound.
func (s *DraftService) RemoveItemAt(ctx context.Context, index int) (*Item, error) {
	var removed *Item
	err := s.update(ctx, func(d *Draft) error {
		if index < 0 || index >= len(d.Items) {
			return ErrItemNotFound
		}
		it := d.Items[index]
		removed = &it
		d.Items = append(d.Items[:index], d.Items[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// RemoveItem removes the item with the given stable identifier. Keying
// removal by ID keeps the grouped display view and the backing sequence
// from disagreeing about which item a delete refers to.
func (s *DraftService) RemoveItem(ctx context.Context, id string) (*Item, error) {
	var removed *Item
	err := s.update(ctx, func(d *Draft) error {
		for i, it := range d.Items {
			if it.ID == id {
				cp := it
				removed = &cp
				d.Items = append(d.Items[:i], d.Items[i+1:]...)
				return nil
			}
		}
		return ErrItemNotFound
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ClearDraft unconditionally resets the draft to empty. It always succeeds
// and is idempotent; cleared items are gone for good.
func (s *DraftService) ClearDraft(ctx context.Context) error {
	return s.store.ResetDraft(ctx)
}

// update runs a read-modify-write cycle under optimistic concurrency,
// retrying a bounded number of times when another editor wins the race.
func (s *DraftService) update(ctx context.Context, mutate func(*Draft) error) error {
	var err error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		var draft Draft
		var etag string
		draft, etag, err = s.store.LoadDraft(ctx)
		if err != nil {
			return err
		}
		if err = mutate(&draft); err != nil {
			return err
		}
		draft.Status = StatusDraft
		err = s.store.SaveDraft(ctx, draft, etag)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}
