package domain

import "time"

// Template is a reusable logbook layout. Templates are soft-deleted:
// deactivated instead of removed so existing logbooks keep their shape.
type Template struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Attributes []string  `json:"attributes"`
	Active     bool      `json:"active"`
	CreatedBy  uint      `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LogbookState string

const (
	LogbookOpen      LogbookState = "open"
	LogbookCompleted LogbookState = "completed"
)

// Logbook is a shift record an auxiliary fills in from a template. The
// grid holds one row per attribute/time cell; it is opaque to the API.
type Logbook struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	TemplateID   uint                `json:"template_id"`
	LaboratoryID uint                `json:"laboratory_id"`
	AuxiliaryID  uint                `json:"auxiliary_id"`
	Attributes   []string            `json:"attributes"`
	Grid         []map[string]string `json:"grid"`
	Summary      string              `json:"summary,omitempty"`
	State        LogbookState        `json:"state"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
