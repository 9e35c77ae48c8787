package service

import (
	"regexp"
	"strconv"
	"strings"

	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
)

// 2-digit state code, 10-character PAN (5 letters, 4 digits, 1 letter),
// entity number, literal Z, check character.
var registrationPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

const checksumAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ValidateRegistrationID checks the grammar and jurisdiction of a registration ID.
// Input is trimmed and upper-cased before matching.
func ValidateRegistrationID(id string) (taxdomain.Registration, error) {
	normalized := strings.ToUpper(strings.TrimSpace(id))
	if normalized == "" {
		return taxdomain.Registration{}, taxdomain.NewValidationError(taxdomain.ErrMissingInput, "registration_id", "registration id is required")
	}
	if !registrationPattern.MatchString(normalized) {
		return taxdomain.Registration{}, taxdomain.NewValidationError(taxdomain.ErrFormat, "registration_id", "registration id does not match the expected format")
	}

	code, err := strconv.Atoi(normalized[:2])
	if err != nil || code < taxdomain.MinJurisdictionCode || code > taxdomain.MaxJurisdictionCode {
		return taxdomain.Registration{}, taxdomain.NewValidationError(taxdomain.ErrJurisdiction, "registration_id", "jurisdiction code must be between 01 and 37")
	}

	name, _ := taxdomain.JurisdictionName(code)
	return taxdomain.Registration{
		ID:               normalized,
		JurisdictionCode: code,
		JurisdictionName: name,
		PAN:              normalized[2:12],
		ChecksumValid:    checksumCharacter(normalized[:14]) == normalized[14],
	}, nil
}

// checksumCharacter computes the mod-36 check character over the first 14 characters.
func checksumCharacter(body string) byte {
	sum := 0
	for i := 0; i < len(body); i++ {
		value := strings.IndexByte(checksumAlphabet, body[i])
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		product := value * factor
		sum += product/36 + product%36
	}
	return checksumAlphabet[(36-sum%36)%36]
}
