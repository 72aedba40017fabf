package domain

import "time"

type LostItemState string

const (
	LostItemStored    LostItemState = "stored"
	LostItemDelivered LostItemState = "delivered"
)

// LostItem tracks a found object until it is handed back. Delivered is
// terminal; delivered items can no longer be edited.
type LostItem struct {
	ID           uint          `json:"id"`
	Description  string        `json:"description"`
	LaboratoryID uint          `json:"laboratory_id"`
	FoundBy      uint          `json:"found_by"`
	FoundAt      string        `json:"found_at"`
	State        LostItemState `json:"state"`
	DeliveredTo  string        `json:"delivered_to,omitempty"`
	DeliveredAt  *time.Time    `json:"delivered_at,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
