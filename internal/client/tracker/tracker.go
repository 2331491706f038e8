// Package tracker owns the displayed entry list and the create/edit/delete
// operations over it. Every operation branches on authentication state and
// the entry's sync status, and ends by rewriting the durable cache so it
// always mirrors the displayed list.
package tracker

import (
	"context"
	"fmt"
	"sync"

	"github.com/meherkandukuri/vegtrack/internal/client/api"
	"github.com/meherkandukuri/vegtrack/internal/client/cache"
	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/client/notices"
	"github.com/meherkandukuri/vegtrack/internal/client/resolve"
	"github.com/meherkandukuri/vegtrack/internal/client/session"
	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/logging"
	"github.com/shopspring/decimal"
)

// Update carries the editable fields of an entry.
type Update struct {
	Name     string
	Price    decimal.Decimal
	Date     string
	Unit     models.Unit
	Currency string
	Market   string
}

// Tracker is the CRUD façade over the displayed list. All mutations
// read-modify-write the full snapshot under one lock; the cache store is the
// only shared mutable state.
type Tracker struct {
	client   api.Client
	sess     *session.Session
	store    cache.Store
	resolver *resolve.Resolver
	notify   *notices.Center
	log      logging.Logger

	mu      sync.Mutex
	entries []models.Entry
}

// New builds a tracker seeded from the durable cache.
func New(ctx context.Context, client api.Client, sess *session.Session, store cache.Store, resolver *resolve.Resolver, notify *notices.Center, log logging.Logger) *Tracker {
	return &Tracker{
		client:   client,
		sess:     sess,
		store:    store,
		resolver: resolver,
		notify:   notify,
		log:      log.With("component", "tracker"),
		entries:  store.Load(ctx),
	}
}

// Entries returns a snapshot of the displayed list, newest first.
func (t *Tracker) Entries() []models.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Add records a new observation. Unauthenticated adds go to the local cache
// only; authenticated adds resolve identity and persist a price record first,
// so they never produce a local-only entry.
func (t *Tracker) Add(ctx context.Context, entry *models.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.sess.Authenticated() {
		t.entries = append([]models.Entry{*entry}, t.entries...)
		t.store.Save(ctx, t.entries)
		t.notify.Successf("Saved locally (login to persist)")
		return nil
	}

	item, err := t.resolver.Resolve(ctx, entry.Name, entry.Unit)
	if err != nil {
		t.notify.Failuref("save failed: %v", err)
		return err
	}

	rec, err := t.client.CreatePrice(ctx, item.ID, api.PricePayload{
		Price:    entry.Price,
		Date:     entry.Date,
		Currency: entry.Currency,
		Market:   entry.Market,
	})
	if err != nil {
		t.notify.Failuref("save failed: %v", err)
		return err
	}

	entry.Name = item.Name
	entry.MarkSynced(item.ID, rec.ID)
	t.entries = append([]models.Entry{*entry}, t.entries...)
	t.store.Save(ctx, t.entries)
	t.notify.Successf("Saved to server")
	return nil
}

// Edit applies upd to the entry with the given local id. Synced entries are
// updated remotely first when authenticated; the local copy changes only
// after the remote call succeeds.
func (t *Tracker) Edit(ctx context.Context, localID string, upd Update) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(localID)
	if idx < 0 {
		return fmt.Errorf("%w: entry %s", common.ErrNotFound, localID)
	}

	updated := t.entries[idx]
	updated.Name = upd.Name
	updated.Price = upd.Price
	updated.Date = upd.Date
	updated.Unit = upd.Unit
	updated.Market = upd.Market
	if upd.Currency != "" {
		updated.Currency = upd.Currency
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	if t.entries[idx].RemoteID != nil && t.sess.Authenticated() {
		_, err := t.client.UpdatePrice(ctx, *t.entries[idx].RemoteID, api.PricePayload{
			Price:    updated.Price,
			Date:     updated.Date,
			Currency: updated.Currency,
			Market:   updated.Market,
		})
		if err != nil {
			t.notify.Failuref("update failed: %v", err)
			return err
		}
		t.notify.Successf("Updated on server")
	} else {
		t.notify.Successf("Updated locally")
	}

	t.entries[idx] = updated
	t.store.Save(ctx, t.entries)
	return nil
}

// Delete removes the entry with the given local id. For synced entries the
// remote record is deleted first; the local copy survives a failed remote
// delete.
func (t *Tracker) Delete(ctx context.Context, localID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(localID)
	if idx < 0 {
		return fmt.Errorf("%w: entry %s", common.ErrNotFound, localID)
	}

	if t.entries[idx].RemoteID != nil && t.sess.Authenticated() {
		if err := t.client.DeletePrice(ctx, *t.entries[idx].RemoteID); err != nil {
			t.notify.Failuref("delete failed: %v", err)
			return err
		}
		t.notify.Successf("Deleted on server")
	} else {
		t.notify.Successf("Removed locally")
	}

	t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	t.store.Save(ctx, t.entries)
	return nil
}

// Refresh replaces the remote-derived part of the displayed list with the
// current catalog. Local-only entries are never evicted by a refresh.
func (t *Tracker) Refresh(ctx context.Context) error {
	if !t.sess.Authenticated() {
		return nil
	}

	items, err := t.client.ListCatalog(ctx)
	if err != nil {
		t.log.Warn(ctx, "catalog refresh failed", "error", err)
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = Merge(t.entries, items)
	t.store.Save(ctx, t.entries)
	return nil
}

// LocalOnly implements syncer.Source.
func (t *Tracker) LocalOnly(ctx context.Context) []models.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []models.Entry
	for _, e := range t.entries {
		if e.LocalOnly() {
			out = append(out, e)
		}
	}
	return out
}

// MarkSynced implements syncer.Source. The mutation is applied in place and
// persisted immediately.
func (t *Tracker) MarkSynced(ctx context.Context, localID string, catalogID, remoteID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(localID)
	if idx < 0 {
		return
	}
	t.entries[idx].MarkSynced(catalogID, remoteID)
	t.store.Save(ctx, t.entries)
}

func (t *Tracker) indexOf(localID string) int {
	for i := range t.entries {
		if t.entries[i].LocalID == localID {
			return i
		}
	}
	return -1
}
