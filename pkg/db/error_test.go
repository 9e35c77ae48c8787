package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":        {err: nil, want: false},
		"translated": {err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		"postgres":   {err: errors.New(`ERROR: duplicate key value violates unique constraint "ux_documents_number" (SQLSTATE 23505)`), want: true},
		"mysql":      {err: errors.New("Error 1062 (23000): Duplicate entry"), want: true},
		"sqlite":     {err: errors.New("constraint failed: UNIQUE constraint failed: documents.document_number (2067)"), want: true},
		"other":      {err: errors.New("connection reset"), want: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyErr(tc.err))
		})
	}
}
