package store

import (
	"fmt"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/ledger"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/models"

	"gorm.io/gorm"
)

// SQLiteStore keeps the debtor table in the application database instead of
// a spreadsheet. Same whole-table semantics: Save replaces every row inside
// one transaction.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load() ([]ledger.RawRow, error) {
	var rows []models.DebtRow
	if err := s.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load debt rows: %w", err)
	}

	raw := make([]ledger.RawRow, 0, len(rows))
	for _, r := range rows {
		row := ledger.RawRow{
			ledger.ColSequence: r.Consecutivo,
			ledger.ColClient:   r.Cliente,
			ledger.ColAmount:   r.Valor,
			ledger.ColPaid:     r.Pagado,
		}
		if r.Fecha != nil {
			row[ledger.ColDate] = *r.Fecha
		}
		raw = append(raw, row)
	}
	return raw, nil
}

func (s *SQLiteStore) Save(records []ledger.DebtRecord) error {
	rows := make([]models.DebtRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.DebtRow{
			Consecutivo: rec.Sequence,
			Cliente:     rec.Client,
			Fecha:       rec.Date,
			Valor:       float64(rec.AmountCents) / 100.0,
			Pagado:      fmt.Sprintf("%t", rec.Paid),
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.DebtRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("save debt rows: %w", err)
	}
	return nil
}
