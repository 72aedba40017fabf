package domain

import "time"

type LaboratoryState string

const (
	LaboratoryActive   LaboratoryState = "active"
	LaboratoryInactive LaboratoryState = "inactive"
)

// Laboratory is a physical room. Equipment, opening hours and images are
// structured here and only serialized to JSON at the storage edge.
type Laboratory struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Code         string            `json:"code"`
	Location     string            `json:"location,omitempty"`
	Capacity     int               `json:"capacity,omitempty"`
	State        LaboratoryState   `json:"state"`
	Equipment    []string          `json:"equipment"`
	OpeningHours map[string]string `json:"opening_hours"`
	Images       []string          `json:"images"`
	ModifiedBy   uint              `json:"modified_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (l Laboratory) IsActive() bool {
	return l.State == LaboratoryActive
}
