package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

type EntryKind string

const (
	EntryKindSale    EntryKind = "sale"
	EntryKindExpense EntryKind = "expense"
)

// Matching tolerances. Both bounds are strict.
var AmountTolerance = decimal.RequireFromString("0.01")

const (
	DayWindow = 7

	ConfidenceSale    = 0.9
	ConfidenceExpense = 0.8
)

type Strategy string

const (
	// StrategyFirstMatch takes the first candidate in the given order.
	StrategyFirstMatch Strategy = "first_match"
	// StrategyClosest assigns greedily by ascending date distance and never
	// proposes one entry for two transactions.
	StrategyClosest Strategy = "closest"
)

// BankTransaction is a bank statement line. The matcher never mutates it.
type BankTransaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Direction   Direction       `json:"direction"`
	Description string          `json:"description,omitempty"`
}

// LedgerEntry is a read-only snapshot of a sale or expense record.
type LedgerEntry struct {
	ID            string          `json:"id"`
	Kind          EntryKind       `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
	DisplayNumber string          `json:"display_number"`
}

type MatchProposal struct {
	Transaction BankTransaction `json:"transaction"`
	Entry       LedgerEntry     `json:"entry"`
	Confidence  float64         `json:"confidence"`
}
