package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty("  a  "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"tradie@example.com",
		"first.last+tag@sub.domain.co",
		"UPPER@CASE.IO",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"no-domain@",
		"spaces in@mail.com",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0193a1c2-5f6e-4a7b-8c9d-0e1f2a3b4c5d"))
	assert.True(t, IsValidUUID("0193A1C2-5F6E-7A7B-9C9D-0E1F2A3B4C5D"), "case insensitive")
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("0193a1c2-5f6e-4a7b-8c9d"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("0412 345 678"))
	assert.True(t, IsValidPhoneNumber("+61-412-345-678"))
	assert.True(t, IsValidPhoneNumber("61412345678"))
	assert.False(t, IsValidPhoneNumber("12345"))
	assert.False(t, IsValidPhoneNumber("phone-number"))
	assert.False(t, IsValidPhoneNumber(""))
}
