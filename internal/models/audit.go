package models

import "time"

// AuditLog records every mutating request against the ledger: who changed
// what, from where, and with which payload. One row per request.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	Operator  string `gorm:"size:64;index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Action    string `gorm:"size:2048"` // method + path + request body excerpt
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
