package dto

import (
	"encoding/json"
	"time"
)

// ActivityLogEntry entrada enviada por el cliente.
type ActivityLogEntry struct {
	ID        string          `json:"id"`
	Timestamp *time.Time      `json:"timestamp"`
	Level     string          `json:"level" validate:"omitempty,oneof=info warning error success"`
	Category  string          `json:"category" validate:"required,max=100"`
	Action    string          `json:"action" validate:"required,max=255"`
	Details   *string         `json:"details"`
	Metadata  json.RawMessage `json:"metadata" swaggertype:"object"`
}

// ActivityLogBatchRequest lote de entradas.
type ActivityLogBatchRequest struct {
	Logs []ActivityLogEntry `json:"logs" validate:"required,min=1,max=500,dive"`
}

// ActivityLogBatchResponse cuántas entradas se guardaron (los ids repetidos se omiten).
type ActivityLogBatchResponse struct {
	Received int `json:"received"`
	Saved    int `json:"saved"`
}

// ActivityLogQuery filtros de consulta.
type ActivityLogQuery struct {
	Category string     `query:"category"`
	Level    string     `query:"level"`
	From     *time.Time `query:"-"`
	To       *time.Time `query:"-"`
	PageRequest
}

// ActivityLogResponse entrada de auditoría.
type ActivityLogResponse struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"user_id"`
	Timestamp time.Time       `json:"timestamp"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Action    string          `json:"action"`
	Details   *string         `json:"details"`
	Metadata  json.RawMessage `json:"metadata" swaggertype:"object"`
}

// ActivityLogListResponse lista paginada.
type ActivityLogListResponse struct {
	Data       []ActivityLogResponse `json:"data"`
	Pagination Pagination            `json:"pagination"`
}
