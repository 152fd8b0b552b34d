package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPinCode(t *testing.T) {
	assert.True(t, ValidPinCode("2DNXYD8"))
	assert.True(t, ValidPinCode("2dnxyd8"), "lowercase pins are accepted")
	assert.True(t, ValidPinCode("abc1234"))

	assert.False(t, ValidPinCode(""), "empty")
	assert.False(t, ValidPinCode("2DNXYD"), "too short")
	assert.False(t, ValidPinCode("2DNXYD88"), "too long")
	assert.False(t, ValidPinCode("2DNXYI8"), "I is excluded from the alphabet")
	assert.False(t, ValidPinCode("2DNXYO8"), "O is excluded from the alphabet")
	assert.False(t, ValidPinCode("2dnxyi8"), "lowercase i is excluded too")
	assert.False(t, ValidPinCode("2DNX-D8"), "punctuation")
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("994501234567"))

	assert.False(t, ValidPhone("99450123456"), "too short")
	assert.False(t, ValidPhone("9945012345678"), "too long")
	assert.False(t, ValidPhone("+994501234567"), "no plus prefix")
	assert.False(t, ValidPhone("995501234567"), "wrong country code")
	assert.False(t, ValidPhone(""))
}

func TestValidOTP(t *testing.T) {
	assert.True(t, ValidOTP("000000"))
	assert.True(t, ValidOTP("123456"))

	assert.False(t, ValidOTP("12345"))
	assert.False(t, ValidOTP("1234567"))
	assert.False(t, ValidOTP("12345a"))
	assert.False(t, ValidOTP(""))
}

func TestValidDocument(t *testing.T) {
	assert.True(t, ValidDocument("AA1234567"))
	assert.True(t, ValidDocument("AZE12345678"))

	assert.False(t, ValidDocument("AA123456"), "AA needs 7 digits")
	assert.False(t, ValidDocument("AZE1234567"), "AZE needs 8 digits")
	assert.False(t, ValidDocument("BB1234567"))
	assert.False(t, ValidDocument(""))
}

func TestPinCanonicalization(t *testing.T) {
	assert.Equal(t, "2DNXYD8", CanonicalPin("  2dnxyd8 "))
	assert.Equal(t, "2dnxyd8", CachePin(" 2DNXYD8  "))
}
