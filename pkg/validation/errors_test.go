package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleCampaign struct {
	Title      string  `validate:"required"`
	Category   string  `validate:"required"`
	GoalAmount float64 `validate:"gt=0"`
}

func TestNewValidationError(t *testing.T) {
	err := validator.New().Struct(sampleCampaign{})

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)

	ve := NewValidationError(fieldErrs)
	require.True(t, ve.HasErrors())

	msg, ok := ve.GetFieldError("Title")
	assert.True(t, ok)
	assert.Contains(t, msg, "required")

	msg, ok = ve.GetFieldError("GoalAmount")
	assert.True(t, ok)
	assert.Contains(t, msg, "greater than")

	assert.NotEmpty(t, ve.Error())
}

func TestUnknownTagFallsBackToGenericMessage(t *testing.T) {
	type withCustomTag struct {
		Status string `validate:"boolean"`
	}
	err := validator.New().Struct(withCustomTag{Status: "active"})

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)

	ve := NewValidationError(fieldErrs)
	msg, ok := ve.GetFieldError("Status")
	assert.True(t, ok)
	assert.Equal(t, "Status is invalid", msg)
}

func TestValidationErrorAddError(t *testing.T) {
	ve := &ValidationError{}
	assert.False(t, ve.HasErrors())

	ve.AddError("goal_amount", "exceeds the category maximum")
	assert.True(t, ve.HasErrors())

	msg, ok := ve.GetFieldError("goal_amount")
	assert.True(t, ok)
	assert.Equal(t, "exceeds the category maximum", msg)
}
