package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTaskRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	LaboratoryID uint     `json:"laboratory_id"`
	AuxiliaryID  uint     `json:"auxiliary_id"`
	Priority     string   `json:"priority,omitempty"`
	DueDate      string   `json:"due_date,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

func (req *CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.LaboratoryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.AuxiliaryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Priority, validation.In("low", "medium", "high")),
		validation.Field(&req.DueDate, validation.Match(dateRegex)),
	)
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	AuxiliaryID *uint     `json:"auxiliary_id,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

func (req *UpdateTaskRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty),
	)
}

type CompleteTaskRequest struct {
	Evidence []string `json:"evidence,omitempty"`
}
