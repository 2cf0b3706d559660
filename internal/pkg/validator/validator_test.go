package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0193c2f4-5a7b-7c3d-89ab-0123456789ab"))
	assert.True(t, IsValidUUID("9F3B2C1A-4D5E-4F6A-8B7C-0D1E2F3A4B5C"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("0193c2f45a7b7c3d89ab0123456789ab"))
}

func TestIsValidCountryCode(t *testing.T) {
	assert.True(t, IsValidCountryCode("CO"))
	assert.True(t, IsValidCountryCode("MX"))
	assert.False(t, IsValidCountryCode("co"))
	assert.False(t, IsValidCountryCode("COL"))
	assert.False(t, IsValidCountryCode(""))
}

func TestIsValidFiscalYear(t *testing.T) {
	assert.True(t, IsValidFiscalYear(2024))
	assert.True(t, IsValidFiscalYear(1999))
	assert.False(t, IsValidFiscalYear(24))
	assert.False(t, IsValidFiscalYear(202404))
}

func TestIsFraction(t *testing.T) {
	assert.True(t, IsFraction(decimal.Zero))
	assert.True(t, IsFraction(decimal.NewFromFloat(0.04)))
	assert.True(t, IsFraction(decimal.NewFromInt(1)))
	assert.False(t, IsFraction(decimal.NewFromFloat(1.01)))
	assert.False(t, IsFraction(decimal.NewFromFloat(-0.04)))
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "year", Message: "must be a four-digit year"},
		{Field: "country_code", Message: "must be a two-letter ISO country code"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "must be a four-digit year", m["year"])
	assert.Contains(t, errs.Error(), "country_code")
}
