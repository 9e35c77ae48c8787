package service

import (
	"testing"

	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistrationIDJurisdictionBoundaries(t *testing.T) {
	cases := []struct {
		id      string
		wantErr error
		code    int
	}{
		{id: "00ABCDE1234F1Z5", wantErr: taxdomain.ErrJurisdiction},
		{id: "01ABCDE1234F1Z5", code: 1},
		{id: "37ABCDE1234F1Z5", code: 37},
		{id: "38ABCDE1234F1Z5", wantErr: taxdomain.ErrJurisdiction},
		{id: "99ABCDE1234F1Z5", wantErr: taxdomain.ErrJurisdiction},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			reg, err := ValidateRegistrationID(tc.id)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.code, reg.JurisdictionCode)
		})
	}
}

func TestValidateRegistrationIDMissing(t *testing.T) {
	_, err := ValidateRegistrationID("   ")
	assert.ErrorIs(t, err, taxdomain.ErrMissingInput)
}

func TestValidateRegistrationIDFormat(t *testing.T) {
	invalid := []string{
		"27AAPFU0939F1Z",    // too short
		"27AAPFU0939F1ZVX",  // too long
		"2AAAPFU0939F1ZV",   // jurisdiction not two digits
		"27AAPF10939F1ZV",   // digit in the letter block
		"27AAPFU09X9F1ZV",   // letter in the digit block
		"27AAPFU093911ZV",   // digit where a letter is required
		"27AAPFU0939F1YV",   // missing literal Z
		"27AAPFU0939F1Z-",   // punctuation
	}
	for _, id := range invalid {
		_, err := ValidateRegistrationID(id)
		assert.ErrorIs(t, err, taxdomain.ErrFormat, id)
	}
}

func TestValidateRegistrationIDNormalizesCaseAndSpace(t *testing.T) {
	reg, err := ValidateRegistrationID("  27aapfu0939f1zv ")
	require.NoError(t, err)

	assert.Equal(t, "27AAPFU0939F1ZV", reg.ID)
	assert.Equal(t, 27, reg.JurisdictionCode)
	assert.Equal(t, "Maharashtra", reg.JurisdictionName)
	assert.Equal(t, "AAPFU0939F", reg.PAN)
}

func TestChecksumIsAdvisory(t *testing.T) {
	valid, err := ValidateRegistrationID("29AAGCB7383J1Z4")
	require.NoError(t, err)
	assert.True(t, valid.ChecksumValid)

	mismatch, err := ValidateRegistrationID("29AAGCB7383J1Z5")
	require.NoError(t, err)
	assert.False(t, mismatch.ChecksumValid)
}

func TestChecksumCharacter(t *testing.T) {
	assert.Equal(t, byte('V'), checksumCharacter("27AAPFU0939F1Z"))
	assert.Equal(t, byte('4'), checksumCharacter("29AAGCB7383J1Z"))
}
