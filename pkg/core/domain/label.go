package domain

import "time"

// Label represents a category tag attachable to places
type Label struct {
	ID        int64     `json:"id"`
	LabelName string    `json:"label_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
