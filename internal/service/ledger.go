// Package service wires the reconciler to its collaborators: it owns the
// canonical active set, serializes reconcile-and-persist cycles, and decides
// when the loader, persister and mirror run.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/store"
)

// Ledger holds the canonical active set between requests. Every mutation
// runs one full reconcile-and-persist cycle under the mutex; the core itself
// does no locking. On a persist failure the updated in-memory set stays the
// source of truth and Flush retries the write independently.
type Ledger struct {
	mu     sync.Mutex
	store  store.Store
	mirror *store.Mirror // optional

	active []ledger.DebtRecord
}

// New loads the persisted table, normalizes it and restores canonical form.
func New(st store.Store, mirror *store.Mirror) (*Ledger, error) {
	raw, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	active, err := ledger.Reconcile(ledger.Normalize(raw), nil)
	if err != nil {
		return nil, fmt.Errorf("reconcile loaded ledger: %w", err)
	}
	return &Ledger{store: st, mirror: mirror, active: active}, nil
}

// Snapshot returns a copy of the canonical active set.
func (s *Ledger) Snapshot() []ledger.DebtRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.DebtRecord, len(s.active))
	copy(out, s.active)
	return out
}

// Totals recomputes the per-client subtotals and grand total on demand.
func (s *Ledger) Totals() ([]ledger.ClientTotal, int64) {
	return ledger.Aggregate(s.Snapshot())
}

// Register appends a new debt. The returned record is the inserted one as it
// ended up in canonical form (its sequence is assigned by the reconcile).
func (s *Ledger) Register(ctx context.Context, client string, date *time.Time, amountCents int64) (ledger.DebtRecord, error) {
	var inserted ledger.DebtRecord
	err := s.apply(ctx, ledger.Insert{Client: client, Date: date, AmountCents: amountCents},
		"registrar deudor "+ledger.NormalizeClient(client))
	if err != nil {
		return inserted, err
	}

	// locate the inserted record: newest row for this client
	target := ledger.NormalizeClient(client)
	for _, rec := range s.Snapshot() {
		if rec.Client == target {
			inserted = rec
		}
	}
	return inserted, nil
}

// SetField edits a single field of one record by sequence number.
func (s *Ledger) SetField(ctx context.Context, sequence int, field string, value any) error {
	return s.apply(ctx, ledger.UpdateField{Sequence: sequence, Field: field, Value: value},
		fmt.Sprintf("editar registro %d", sequence))
}

// EditTable merges a bulk table edit. filterClient names the client filter
// the edit view had active; records hidden by that filter are out of the
// edit's scope and survive untouched. An empty filterClient means the edit
// covered the whole table and is authoritative over all of it.
func (s *Ledger) EditTable(ctx context.Context, filterClient string, rows []ledger.EditedRow) error {
	m := ledger.ReplaceAll{Rows: rows}
	if target := ledger.NormalizeClient(filterClient); target != "" {
		m.Scope = func(rec ledger.DebtRecord) bool { return rec.Client == target }
	}
	return s.apply(ctx, m, "edición de tabla")
}

// Flush re-persists the current canonical set, for retrying after a persist
// failure.
func (s *Ledger) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, "reintento de guardado")
}

// apply runs one reconcile-and-persist cycle. A validation error leaves the
// active set untouched; a persist error does not roll the set back.
func (s *Ledger) apply(ctx context.Context, m ledger.Mutation, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := ledger.Reconcile(s.active, m)
	if err != nil {
		return err
	}
	s.active = next
	return s.persist(ctx, action)
}

func (s *Ledger) persist(ctx context.Context, action string) error {
	if err := s.store.Save(s.active); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	if s.mirror != nil {
		content, err := store.EncodeXLSX(s.active)
		if err != nil {
			return fmt.Errorf("encode mirror content: %w", err)
		}
		if err := s.mirror.Push(ctx, content, action); err != nil {
			return err
		}
	}
	return nil
}
