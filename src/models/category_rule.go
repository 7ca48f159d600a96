package models

import (
	"encoding/json"
	"time"
)

// CategoryRule auto-assigns CategoryID to transactions whose fields match the
// rule's condition tree. Rules are applied on demand, first match wins.
type CategoryRule struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Name       string          `json:"name"`
	Conditions json.RawMessage `json:"conditions"`
	CategoryID int64           `json:"category_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at"`
}
