package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one mutating console request
type AuditEntry struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	RequestID  string        `json:"requestId" db:"request_id"`
	Operator   string        `json:"operator" db:"operator"`
	Method     string        `json:"method" db:"method"`
	Path       string        `json:"path" db:"path"`
	Status     int           `json:"status" db:"status"`
	Duration   time.Duration `json:"duration" db:"duration_ms"`
	RemoteAddr string        `json:"remoteAddr" db:"remote_addr"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}
