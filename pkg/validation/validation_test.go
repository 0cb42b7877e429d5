package validation_test

import (
	"strings"
	"testing"

	"github.com/maelkum/storefront/pkg/validation"
	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, validation.ValidateUsername("bob"))
	assert.NoError(t, validation.ValidateUsername("alice-from-accounting"))
	assert.Error(t, validation.ValidateUsername(""))
	assert.Error(t, validation.ValidateUsername("ab"))
	assert.Error(t, validation.ValidateUsername(strings.Repeat("x", 201)))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validation.ValidatePassword("p4ssword!"))
	assert.Error(t, validation.ValidatePassword(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validation.ValidateEmail("alice@example.com"))
	assert.NoError(t, validation.ValidateEmail("a.b+c@sub.example.co"))
	assert.Error(t, validation.ValidateEmail(""))
	assert.Error(t, validation.ValidateEmail("not-an-email"))
	assert.Error(t, validation.ValidateEmail("missing@domain"))
	assert.Error(t, validation.ValidateEmail("two@@example.com"))
	assert.Error(t, validation.ValidateEmail("spaces in@example.com"))
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, validation.ValidateQuantity(1))
	assert.NoError(t, validation.ValidateQuantity(99))
	assert.Error(t, validation.ValidateQuantity(0))
	assert.Error(t, validation.ValidateQuantity(-1))
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, validation.ValidatePage(1))
	assert.Error(t, validation.ValidatePage(0))
	assert.Error(t, validation.ValidatePage(-5))
}

func TestValidateWorkerCount(t *testing.T) {
	assert.NoError(t, validation.ValidateWorkerCount(validation.MinWorkers))
	assert.NoError(t, validation.ValidateWorkerCount(validation.MaxWorkers))
	assert.Error(t, validation.ValidateWorkerCount(0))
	assert.Error(t, validation.ValidateWorkerCount(validation.MaxWorkers+1))
}

func TestValidateNonEmptyString(t *testing.T) {
	assert.NoError(t, validation.ValidateNonEmptyString("city", "Springfield"))
	err := validation.ValidateNonEmptyString("city", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "city")
}
