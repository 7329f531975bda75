// Package store holds the persistence collaborators of the ledger: whole
// table in, whole table out, no partial writes. Backends share the column
// schema Consecutivo / Cliente / Fecha / Valor / Pagado.
package store

import "github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"

// Store loads the raw persisted table and overwrites it with a canonical
// active set. Load returns raw, untyped rows — interpretation belongs to
// ledger.Normalize. A backend that finds its artifact unreadable quarantines
// it and loads empty rather than failing the application.
type Store interface {
	Load() ([]ledger.RawRow, error)
	Save(records []ledger.DebtRecord) error
}
