package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTemplateRequest struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

func (req *CreateTemplateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Attributes, validation.Required, validation.Length(1, 50)),
	)
}

type UpdateTemplateRequest struct {
	Name       *string   `json:"name,omitempty"`
	Attributes *[]string `json:"attributes,omitempty"`
}

func (req *UpdateTemplateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
	)
}

type CreateLogbookRequest struct {
	Name         string `json:"name"`
	TemplateID   uint   `json:"template_id"`
	LaboratoryID uint   `json:"laboratory_id"`
}

func (req *CreateLogbookRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.TemplateID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.LaboratoryID, validation.Required, validation.Min(uint(1))),
	)
}

type UpdateLogbookRequest struct {
	Name    *string              `json:"name,omitempty"`
	Grid    *[]map[string]string `json:"grid,omitempty"`
	Summary *string              `json:"summary,omitempty"`
}

func (req *UpdateLogbookRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
	)
}
