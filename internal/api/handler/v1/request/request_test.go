package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "passw0rd", true},
		{"long mixed", "correct-horse-42", true},
		{"too short", "pass1", false},
		{"letters only", "passwords", false},
		{"digits only", "12345678", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validPassword(tt.password))
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Email:    "aux@university.edu",
		Password: "passw0rd",
		Name:     "Alex Auxiliary",
	}

	require.NoError(t, valid.Validate())

	noLetters := valid
	noLetters.Password = "12345678"
	require.ErrorIs(t, noLetters.Validate(), errInvalidPassword)

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	shortName := valid
	shortName.Name = "A"
	assert.Error(t, shortName.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	require.NoError(t, (&LoginRequest{Email: "a@b.cd", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@b.cd", Password: ""}).Validate())
}

func TestCreateReservationRequest_Validate(t *testing.T) {
	valid := CreateReservationRequest{
		LaboratoryID: 1,
		Date:         "2026-09-15",
		StartTime:    "10:00",
		EndTime:      "12:00",
		Subject:      "Organic chemistry practical",
	}

	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateReservationRequest)
	}{
		{"no laboratory", func(r *CreateReservationRequest) { r.LaboratoryID = 0 }},
		{"bad date grammar", func(r *CreateReservationRequest) { r.Date = "15/09/2026" }},
		{"unpadded time", func(r *CreateReservationRequest) { r.StartTime = "9:00" }},
		{"missing end time", func(r *CreateReservationRequest) { r.EndTime = "" }},
		{"subject too short", func(r *CreateReservationRequest) { r.Subject = "x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestRejectReservationRequest_Validate(t *testing.T) {
	require.NoError(t, (&RejectReservationRequest{Reason: "equipment maintenance"}).Validate())
	assert.Error(t, (&RejectReservationRequest{Reason: ""}).Validate())
	assert.Error(t, (&RejectReservationRequest{Reason: "x"}).Validate())
}
