package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

type CreateReservationRequest struct {
	LaboratoryID uint   `json:"laboratory_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Subject      string `json:"subject"`
	Description  string `json:"description,omitempty"`
}

func (req *CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LaboratoryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Date, validation.Required, validation.Match(dateRegex)),
		validation.Field(&req.StartTime, validation.Required, validation.Match(clockRegex)),
		validation.Field(&req.EndTime, validation.Required, validation.Match(clockRegex)),
		validation.Field(&req.Subject, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

type RejectReservationRequest struct {
	Reason string `json:"reason"`
}

func (req *RejectReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Required, validation.Length(2, 500)),
	)
}
