package customvalidator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name      string  `json:"name" validate:"required"`
	Date      *string `json:"assigned_date" validate:"omitempty,date_ymd"`
	Project   string  `json:"project_status" validate:"omitempty,project_status"`
	Machinery string  `json:"machinery_status" validate:"omitempty,machinery_status"`
	Status    *string `json:"status" validate:"omitempty,assignment_status"`
}

func newValidate(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func strPtr(s string) *string { return &s }

func TestValid(t *testing.T) {
	v := newValidate(t)
	err := v.Struct(sample{
		Name:      "Road Repair",
		Date:      strPtr("2025-01-05"),
		Project:   "IN_PROGRESS",
		Machinery: "OUT_OF_SERVICE",
		Status:    strPtr("RETURNED"),
	})
	assert.NoError(t, err)
}

func TestInvalidValues(t *testing.T) {
	v := newValidate(t)

	cases := map[string]sample{
		"assigned_date":    {Name: "x", Date: strPtr("05/01/2025")},
		"project_status":   {Name: "x", Project: "DONE"},
		"machinery_status": {Name: "x", Machinery: "BROKEN"},
		"status":           {Name: "x", Status: strPtr("LOST")},
		"name":             {},
	}

	for field, s := range cases {
		err := v.Struct(s)
		require.Error(t, err, field)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, field, verrs[0].Field())
	}
}

func TestDateYMD_RejectsImpossibleDate(t *testing.T) {
	v := newValidate(t)
	assert.Error(t, v.Struct(sample{Name: "x", Date: strPtr("2025-02-30")}))
}
