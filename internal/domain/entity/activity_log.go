package entity

import (
	"encoding/json"
	"time"
)

// Niveles de log de actividad.
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelSuccess = "success"
)

// ActivityLog entrada de auditoría. LogID lo genera el cliente (o uuid en servidor).
type ActivityLog struct {
	ID        int64
	LogID     string
	UserID    int64
	Timestamp time.Time
	Level     string
	Category  string
	Action    string
	Details   *string
	Metadata  json.RawMessage
	CreatedAt time.Time
}
