package ledger

import (
	"errors"
	"fmt"
	"sort"
)

// ErrClientRequired rejects an Insert whose client is empty after
// normalization. The only hard validation rule in the core.
var ErrClientRequired = errors.New("client is required")

// ErrNoSuchRecord rejects an UpdateField whose sequence matches nothing in
// the active set.
var ErrNoSuchRecord = errors.New("no record with that sequence")

// Reconcile merges a mutation into the active set and restores canonical
// form: paid records removed, stable client order (empty client last), dense
// 1..N sequence numbers. The input slice is never modified; on error the
// prior set stands unchanged. A nil mutation just re-canonicalizes, which is
// a no-op on an already-canonical set.
func Reconcile(active []DebtRecord, m Mutation) ([]DebtRecord, error) {
	working := make([]DebtRecord, len(active))
	copy(working, active)

	var err error
	switch mut := m.(type) {
	case nil:
		// canonicalize only
	case Insert:
		working, err = applyInsert(working, mut)
	case ReplaceAll:
		working = applyReplaceAll(working, mut)
	case UpdateField:
		working, err = applyUpdateField(working, mut)
	default:
		err = fmt.Errorf("unknown mutation %T", m)
	}
	if err != nil {
		return nil, err
	}
	return canonicalize(working), nil
}

func applyInsert(working []DebtRecord, m Insert) ([]DebtRecord, error) {
	client := NormalizeClient(m.Client)
	if client == "" {
		return nil, ErrClientRequired
	}
	working = append(working, DebtRecord{
		Sequence:    len(working) + 1, // provisional, re-assigned below
		Client:      client,
		Date:        m.Date,
		AmountCents: clampCents(m.AmountCents),
		Paid:        false,
	})
	return working, nil
}

// applyReplaceAll treats the edit set as authoritative over every in-scope
// record: matched rows are overwritten in place, unmatched incoming rows
// become inserts, and in-scope records missing from the edit set are dropped.
// That last part is deliberate and mirrors the original whole-table-save
// behavior; Scope exists so a filtered edit view only has that authority
// over what it displayed.
func applyReplaceAll(working []DebtRecord, m ReplaceAll) []DebtRecord {
	inScope := m.Scope
	if inScope == nil {
		inScope = func(DebtRecord) bool { return true }
	}

	bySequence := make(map[int]int, len(working)) // sequence -> working index
	for i, rec := range working {
		if inScope(rec) {
			bySequence[rec.Sequence] = i
		}
	}

	next := make([]DebtRecord, 0, len(working)+len(m.Rows))
	touched := make(map[int]bool, len(m.Rows))
	var inserts []DebtRecord

	for _, row := range m.Rows {
		rec := DebtRecord{
			Client:      NormalizeClient(row.Client),
			Date:        row.Date,
			AmountCents: clampCents(row.AmountCents),
			Paid:        row.Paid,
		}
		if idx, ok := bySequence[row.Sequence]; ok && row.Sequence > 0 {
			rec.Sequence = row.Sequence
			working[idx] = rec
			touched[idx] = true
			continue
		}
		inserts = append(inserts, rec)
	}

	for i := range working {
		// in-scope records absent from the edit set are dropped
		if !inScope(working[i]) || touched[i] {
			next = append(next, working[i])
		}
	}
	return append(next, inserts...)
}

func applyUpdateField(working []DebtRecord, m UpdateField) ([]DebtRecord, error) {
	idx := -1
	for i, rec := range working {
		if rec.Sequence == m.Sequence {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("sequence %d: %w", m.Sequence, ErrNoSuchRecord)
	}

	switch m.Field {
	case FieldClient:
		working[idx].Client = NormalizeClient(coerceString(m.Value))
	case FieldDate:
		working[idx].Date = coerceDate(m.Value)
	case FieldAmount:
		working[idx].AmountCents = coerceAmount(m.Value)
	case FieldPaid:
		working[idx].Paid = coercePaid(m.Value)
	default:
		return nil, fmt.Errorf("unknown field %q", m.Field)
	}
	return working, nil
}

// canonicalize enforces the set-level invariants: drop paid records,
// stable-sort by client with empty clients last, re-number 1..N.
func canonicalize(working []DebtRecord) []DebtRecord {
	out := make([]DebtRecord, 0, len(working))
	for _, rec := range working {
		if rec.Paid {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Client, out[j].Client
		if (a == "") != (b == "") {
			return a != "" // empty clients sort last
		}
		return a < b
	})

	for i := range out {
		out[i].Sequence = i + 1
	}
	return out
}
