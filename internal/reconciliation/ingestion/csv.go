package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/khata/internal/reconciliation/domain"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

var columnAliases = map[string]string{
	"id":             "id",
	"transaction_id": "id",
	"reference":      "id",
	"ref":            "id",
	"date":           "date",
	"value_date":     "date",
	"posted_at":      "date",
	"occurred_at":    "date",
	"description":    "description",
	"narration":      "description",
	"details":        "description",
	"amount":         "amount",
	"direction":      "direction",
	"type":           "direction",
	"dr_cr":          "direction",
}

// ParseCSV reads a bank statement with a header row. Required columns are
// date and amount; id, description and direction are optional. Without a
// direction column a negative amount is a debit and a positive one a credit.
// Amounts are returned unsigned.
//
// Expected header (any order, common aliases accepted):
//
//	id,date,description,amount,direction
func ParseCSV(r io.Reader) ([]domain.BankTransaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty statement", domain.ErrInvalidStatement)
		}
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrInvalidStatement, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			if _, dup := columns[canonical]; !dup {
				columns[canonical] = i
			}
		}
	}
	for _, required := range []string{"date", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s column", domain.ErrInvalidStatement, required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var transactions []domain.BankTransaction
	lineNum := 1
	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidStatement, lineNum, err)
		}
		if isBlank(row) {
			continue
		}

		amount, err := parseAmount(field(row, "amount"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d amount: %v", domain.ErrInvalidStatement, lineNum, err)
		}

		occurredAt, err := parseDate(field(row, "date"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d date: %v", domain.ErrInvalidStatement, lineNum, err)
		}

		direction, err := parseDirection(field(row, "direction"), amount)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d direction: %v", domain.ErrInvalidStatement, lineNum, err)
		}

		id := field(row, "id")
		if id == "" {
			id = fmt.Sprintf("line-%d", lineNum)
		}

		transactions = append(transactions, domain.BankTransaction{
			ID:          id,
			Amount:      amount.Abs(),
			OccurredAt:  occurredAt,
			Direction:   direction,
			Description: field(row, "description"),
		})
	}

	return transactions, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return decimal.Zero, errors.New("empty")
	}
	// Accounting negatives: (123.45)
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + strings.Trim(cleaned, "()")
	}
	return decimal.NewFromString(cleaned)
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func parseDirection(raw string, amount decimal.Decimal) (domain.Direction, error) {
	switch strings.ToLower(raw) {
	case "":
		if amount.IsNegative() {
			return domain.DirectionDebit, nil
		}
		return domain.DirectionCredit, nil
	case "credit", "cr", "c", "deposit":
		return domain.DirectionCredit, nil
	case "debit", "dr", "d", "withdrawal":
		return domain.DirectionDebit, nil
	default:
		return "", fmt.Errorf("unknown direction %q", raw)
	}
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
