package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// duplicateKeyMarkers are the driver messages for unique violations that
// reach us untranslated: postgres 23505, mysql 1062, sqlite 2067.
var duplicateKeyMarkers = []string{
	"duplicate key value violates unique constraint",
	"SQLSTATE 23505",
	"Error 1062",
	"UNIQUE constraint failed",
}

// IsDuplicateKeyErr reports a unique constraint violation, such as a second
// document with the same number for one org.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	for _, marker := range duplicateKeyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
