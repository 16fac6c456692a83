package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/quotation-api/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("frontera: %w", &domain.ValidationError{Fields: []string{"clientName", "items"}})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var vErr *domain.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Missing required fields", vErr.Error())
	assert.Equal(t, "clientName, items", vErr.Detail())
}

func TestMissingFieldError_NombraElCampo(t *testing.T) {
	err := &domain.MissingFieldError{Field: "serviceWarranty"}

	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.Equal(t, "Missing required field: serviceWarranty", err.Error())
}

func TestRenderFailure_ConservaLaCausa(t *testing.T) {
	err := &domain.RenderFailure{Engine: "chrome", Err: context.DeadlineExceeded}

	assert.ErrorIs(t, err, domain.ErrRender)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "chrome")
}
