package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateLaboratoryRequest struct {
	Name         string            `json:"name"`
	Code         string            `json:"code"`
	Location     string            `json:"location,omitempty"`
	Capacity     int               `json:"capacity,omitempty"`
	State        string            `json:"state,omitempty"`
	Equipment    []string          `json:"equipment,omitempty"`
	OpeningHours map[string]string `json:"opening_hours,omitempty"`
	Images       []string          `json:"images,omitempty"`
}

func (req *CreateLaboratoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Code, validation.Required, validation.Length(2, 20)),
		validation.Field(&req.State, validation.In("active", "inactive")),
		validation.Field(&req.Capacity, validation.Min(0)),
	)
}

type UpdateLaboratoryRequest struct {
	Name         *string            `json:"name,omitempty"`
	Code         *string            `json:"code,omitempty"`
	Location     *string            `json:"location,omitempty"`
	Capacity     *int               `json:"capacity,omitempty"`
	State        *string            `json:"state,omitempty"`
	Equipment    *[]string          `json:"equipment,omitempty"`
	OpeningHours *map[string]string `json:"opening_hours,omitempty"`
	Images       *[]string          `json:"images,omitempty"`
}

func (req *UpdateLaboratoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
		validation.Field(&req.Code, validation.NilOrNotEmpty),
		validation.Field(&req.State, validation.NilOrNotEmpty),
	)
}
