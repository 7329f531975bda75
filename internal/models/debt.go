package models

import "time"

// DebtRow is the SQLite shape of one persisted debt record. Column names
// mirror the spreadsheet schema so both backends stay interchangeable.
// Pagado is kept as text on purpose: hand-migrated databases carry the same
// affirmative spellings the spreadsheet does ("sí", "pagado", "1"), and the
// reconciler's normalization owns their interpretation.
type DebtRow struct {
	ID          uint       `gorm:"primaryKey"`
	Consecutivo int        `gorm:"index"`
	Cliente     string     `gorm:"size:128"`
	Fecha       *time.Time `gorm:"index"`
	Valor       float64    `gorm:"not null;default:0"`
	Pagado      string     `gorm:"size:16"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps the table named after the domain rather than a Go plural.
func (DebtRow) TableName() string { return "deudores" }
