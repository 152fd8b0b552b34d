package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP(6)
		require.NoError(t, err)
		assert.True(t, ValidOTP(otp), "generated %q", otp)
	}
}

func TestGenerateOTPLength(t *testing.T) {
	otp, err := GenerateOTP(4)
	require.NoError(t, err)
	assert.Len(t, otp, 4)
}
