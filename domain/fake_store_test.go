package domain

import (
	"context"
	"strconv"
)

// fakeDraftStore is an in-memory DraftStore with etag-checked saves, used
// to exercise the aggregate's read-modify-write behavior.
type fakeDraftStore struct {
	draft     *Draft // nil means never persisted
	etag      int
	saves     int
	resets    int
	conflicts int // saves to reject before accepting, simulating racing writers
	loadErr   error
	saveErr   error
}

func (f *fakeDraftStore) currentETag() string {
	if f.draft == nil {
		return ""
	}
	return strconv.Itoa(f.etag)
}

func (f *fakeDraftStore) LoadDraft(context.Context) (Draft, string, error) {
	if f.loadErr != nil {
		return Draft{}, "", f.loadErr
	}
	if f.draft == nil {
		return EmptyDraft(), "", nil
	}
	cp := *f.draft
	cp.Items = append([]Item(nil), f.draft.Items...)
	return cp, f.currentETag(), nil
}

func (f *fakeDraftStore) SaveDraft(_ context.Context, d Draft, etag string) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.conflicts > 0 {
		f.conflicts--
		f.etag++
		return ErrConcurrencyConflict
	}
	if etag != f.currentETag() {
		return ErrConcurrencyConflict
	}
	cp := d
	cp.Items = append([]Item(nil), d.Items...)
	f.draft = &cp
	f.etag++
	return nil
}

func (f *fakeDraftStore) ResetDraft(context.Context) error {
	f.resets++
	e := EmptyDraft()
	f.draft = &e
	f.etag++
	return nil
}
