package customvalidator

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	OSNumber    string  `validate:"required,os_number"`
	Status      string  `validate:"omitempty,os_status"`
	Priority    string  `validate:"omitempty,os_priority"`
	Role        string  `validate:"omitempty,user_role"`
	Description *string `validate:"omitempty,max_words=100"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestOSNumber(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{OSNumber: "1001"}))
	assert.NoError(t, v.Struct(sample{OSNumber: "1234567890"}))
	assert.Error(t, v.Struct(sample{OSNumber: "12345678901"}))
	assert.Error(t, v.Struct(sample{OSNumber: "10a1"}))
	assert.Error(t, v.Struct(sample{OSNumber: ""}))
}

func TestEnumRules(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{OSNumber: "1", Status: "atrasado", Priority: "urgente", Role: "analist"}))
	assert.Error(t, v.Struct(sample{OSNumber: "1", Status: "done"}))
	assert.Error(t, v.Struct(sample{OSNumber: "1", Priority: "critica"}))
	assert.Error(t, v.Struct(sample{OSNumber: "1", Role: "root"}))
}

func TestMaxWords(t *testing.T) {
	v := newValidator(t)

	hundred := strings.TrimSpace(strings.Repeat("palavra ", 100))
	tooMany := hundred + " extra"

	assert.NoError(t, v.Struct(sample{OSNumber: "1", Description: &hundred}))
	assert.Error(t, v.Struct(sample{OSNumber: "1", Description: &tooMany}))
}
