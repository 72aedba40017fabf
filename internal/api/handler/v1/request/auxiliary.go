package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateAuxiliaryRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
}

func (req *CreateAuxiliaryRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
	if err != nil {
		return err
	}

	if !validPassword(req.Password) {
		return errInvalidPassword
	}

	return nil
}

type UpdateAuxiliaryRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (req *UpdateAuxiliaryRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
	)
	if err != nil {
		return err
	}

	if req.Password != nil && !validPassword(*req.Password) {
		return errInvalidPassword
	}

	return nil
}

type AssignLaboratoriesRequest struct {
	LaboratoryIDs []uint `json:"laboratory_ids"`
}

func (req *AssignLaboratoriesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LaboratoryIDs, validation.NotNil),
	)
}

type ScheduleWindowRequest struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SetScheduleRequest struct {
	Windows []ScheduleWindowRequest `json:"windows"`
}

func (req *SetScheduleRequest) Validate() error {
	if err := validation.Validate(req.Windows, validation.NotNil); err != nil {
		return err
	}

	for _, w := range req.Windows {
		err := validation.ValidateStruct(
			&w,
			validation.Field(&w.Day, validation.Required, validation.In(
				"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
			)),
			validation.Field(&w.StartTime, validation.Required, validation.Match(clockRegex)),
			validation.Field(&w.EndTime, validation.Required, validation.Match(clockRegex)),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
