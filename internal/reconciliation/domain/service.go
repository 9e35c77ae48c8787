package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidTransaction  = errors.New("invalid_transaction")
	ErrInvalidStrategy     = errors.New("invalid_strategy")
	ErrInvalidStatement    = errors.New("invalid_statement")
)

// CandidateLoader reads the ledger entries of an org inside [from, to],
// ordered by occurrence then id.
type CandidateLoader interface {
	ListLedgerEntries(ctx context.Context, orgID snowflake.ID, from, to time.Time) ([]LedgerEntry, error)
}

type ProposeRequest struct {
	Transactions []BankTransaction `json:"transactions"`
	Strategy     Strategy          `json:"strategy,omitempty"`
}

type ProposeResult struct {
	Proposals []MatchProposal   `json:"proposals"`
	Unmatched []BankTransaction `json:"unmatched"`
}

type Service interface {
	Propose(ctx context.Context, req ProposeRequest) (ProposeResult, error)
	ProposeFromStatement(ctx context.Context, statement io.Reader, strategy Strategy) (ProposeResult, error)
}
