// Package ledger owns the in-memory representation of debt records: it
// normalizes raw tabular data, merges edits into the active set and restores
// canonical form (no paid records, client order, dense sequence numbers).
// All I/O lives outside this package.
package ledger

import "time"

// Persisted column names. The on-disk schema is column-name keyed and
// order-insensitive.
const (
	ColSequence = "Consecutivo"
	ColClient   = "Cliente"
	ColDate     = "Fecha"
	ColAmount   = "Valor"
	ColPaid     = "Pagado"
)

// Columns lists the persisted schema in its conventional order.
var Columns = []string{ColSequence, ColClient, ColDate, ColAmount, ColPaid}

// RawRow is one row as read from storage: column name -> untyped cell value.
// Values may be missing, wrong-typed or malformed.
type RawRow map[string]any

// DebtRecord is one owed amount from one client.
// Amounts are stored in currency minor units (cents) to avoid float drift.
type DebtRecord struct {
	Sequence    int        `json:"sequence"`
	Client      string     `json:"client"`
	Date        *time.Time `json:"date,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	Paid        bool       `json:"paid"`
}

// Mutation is one proposed change to the active set, merged by Reconcile.
type Mutation interface {
	isMutation()
}

// Insert registers a new debt. New records always start unpaid.
type Insert struct {
	Client      string
	Date        *time.Time
	AmountCents int64
}

// EditedRow is one row coming back from a bulk table edit. Rows with a
// Sequence matching an existing record overwrite it; rows with Sequence 0
// (or any unknown sequence) are treated as new inserts.
type EditedRow struct {
	Sequence    int
	Client      string
	Date        *time.Time
	AmountCents int64
	Paid        bool
}

// ReplaceAll is a whole-view table edit: the edit set is authoritative over
// every record within scope, so an in-scope record omitted from Rows is
// dropped. Scope limits that authority to the records the edit view actually
// showed; records for which Scope returns false are preserved untouched. A
// nil Scope covers the whole table.
type ReplaceAll struct {
	Rows  []EditedRow
	Scope func(DebtRecord) bool
}

// UpdateField edits a single field of the record with the given sequence.
type UpdateField struct {
	Sequence int
	Field    string
	Value    any
}

// Field names accepted by UpdateField.
const (
	FieldClient = "client"
	FieldDate   = "date"
	FieldAmount = "amount"
	FieldPaid   = "paid"
)

func (Insert) isMutation()      {}
func (ReplaceAll) isMutation()  {}
func (UpdateField) isMutation() {}
