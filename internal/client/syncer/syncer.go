// Package syncer reconciles local-only entries against the remote store when
// the client becomes authenticated.
package syncer

import (
	"context"
	"sync"

	"github.com/meherkandukuri/vegtrack/internal/client/api"
	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/client/resolve"
	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/logging"
)

// State tracks a single entry through one reconciliation pass.
type State string

const (
	StateLocalOnly  State = "local_only"
	StateResolving  State = "resolving"
	StatePersisting State = "persisting"
	StateSynced     State = "synced"
	StateFailed     State = "failed"
)

// Source is the entry list the reconciler drains. Implemented by the tracker.
type Source interface {
	// LocalOnly returns a snapshot of entries that still lack remote
	// identifiers.
	LocalOnly(ctx context.Context) []models.Entry

	// MarkSynced attaches remote identifiers to the entry with the given
	// local id and persists the change.
	MarkSynced(ctx context.Context, localID string, catalogID, remoteID int64)
}

// Notifier receives transient per-entry outcome notices.
type Notifier interface {
	Successf(format string, args ...any)
	Failuref(format string, args ...any)
}

// Report summarizes one reconciliation run.
type Report struct {
	Synced int
	Failed int
}

// Reconciler converts local-only entries into synced ones. Entries are
// processed one at a time, strictly sequentially, so two resolutions of the
// same name can never race to create duplicate catalog items.
//
// Runs are single-flight: Trigger while a run is active coalesces into one
// follow-up run instead of starting a second overlapping batch.
type Reconciler struct {
	resolver *resolve.Resolver
	client   api.Client
	source   Source
	notify   Notifier
	log      logging.Logger

	mu      sync.Mutex
	running bool
	pending bool
}

func New(resolver *resolve.Resolver, client api.Client, source Source, notify Notifier, log logging.Logger) *Reconciler {
	return &Reconciler{
		resolver: resolver,
		client:   client,
		source:   source,
		notify:   notify,
		log:      log.With("component", "syncer"),
	}
}

// Trigger runs reconciliation in the calling goroutine. If a run is already
// active, the request is coalesced: the active run is followed by exactly one
// more pass, and Trigger returns immediately.
func (r *Reconciler) Trigger(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	for {
		r.runOnce(ctx)

		r.mu.Lock()
		if !r.pending {
			r.running = false
			r.mu.Unlock()
			return
		}
		r.pending = false
		r.mu.Unlock()
	}
}

// runOnce drains the current local-only snapshot. A single entry's failure
// never aborts the batch; the entry stays local-only for the next trigger.
func (r *Reconciler) runOnce(ctx context.Context) Report {
	var report Report

	for _, entry := range r.source.LocalOnly(ctx) {
		state := StateResolving

		item, err := r.resolver.Resolve(ctx, entry.Name, entry.Unit)
		if err != nil {
			state = StateFailed
			r.log.Warn(ctx, "identity resolution failed",
				"entry", entry.LocalID, "name", entry.Name, "state", string(state), "error", err)
			r.notify.Failuref("sync of %s failed: %v", entry.Name, err)
			report.Failed++
			continue
		}

		state = StatePersisting
		payload := api.PricePayload{
			Price:    entry.Price,
			Date:     entry.Date,
			Currency: entry.Currency,
			Market:   entry.Market,
		}
		if payload.Currency == "" {
			payload.Currency = common.DefaultCurrency
		}

		rec, err := r.client.CreatePrice(ctx, item.ID, payload)
		if err != nil {
			state = StateFailed
			r.log.Warn(ctx, "price submission failed",
				"entry", entry.LocalID, "catalog_id", item.ID, "state", string(state), "error", err)
			r.notify.Failuref("sync of %s failed: %v", entry.Name, err)
			report.Failed++
			continue
		}

		state = StateSynced
		r.source.MarkSynced(ctx, entry.LocalID, item.ID, rec.ID)
		r.log.Info(ctx, "entry synced",
			"entry", entry.LocalID, "catalog_id", item.ID, "remote_id", rec.ID, "state", string(state))
		r.notify.Successf("Synced %s", entry.Name)
		report.Synced++
	}

	return report
}
