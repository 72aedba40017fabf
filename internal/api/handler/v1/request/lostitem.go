package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateLostItemRequest struct {
	Description  string `json:"description"`
	LaboratoryID uint   `json:"laboratory_id"`
	FoundAt      string `json:"found_at"`
	Notes        string `json:"notes,omitempty"`
}

func (req *CreateLostItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Description, validation.Required, validation.Length(2, 500)),
		validation.Field(&req.LaboratoryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.FoundAt, validation.Required, validation.Match(dateRegex)),
	)
}

type UpdateLostItemRequest struct {
	Description *string `json:"description,omitempty"`
	FoundAt     *string `json:"found_at,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (req *UpdateLostItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Description, validation.NilOrNotEmpty),
	)
}

type DeliverLostItemRequest struct {
	DeliveredTo string `json:"delivered_to"`
}

func (req *DeliverLostItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DeliveredTo, validation.Required, validation.Length(2, 100)),
	)
}
