package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submission struct {
	Name   string `form:"name" validate:"max=80"`
	Rating int    `form:"rating" validate:"required,min=1,max=5"`
	Image  string `json:"imageUrl" validate:"omitempty,url"`
	Note   string `validate:"max=3"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(submission{Name: "Ada", Rating: 4}))
}

func TestValidate_UsesWireNames(t *testing.T) {
	err := Validate(submission{Image: "not a url"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["rating"])
	assert.Equal(t, "must be a valid URL", fields["imageUrl"])
}

func TestValidate_NumericAndStringBounds(t *testing.T) {
	err := Validate(submission{Rating: 9, Note: "toolong"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "must be at most 5", fields["rating"])
	assert.Equal(t, "must be at most 3 characters", fields["Note"])
	assert.Contains(t, valErr.Error(), "rating must be at most 5")
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate(42)
	require.Error(t, err)

	var valErr *ValidationError
	assert.False(t, errors.As(err, &valErr))
}
