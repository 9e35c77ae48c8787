package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
	"github.com/smallbiznis/khata/pkg/db/pagination"
)

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidKind         = errors.New("invalid_kind")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrInvalidDocumentType = errors.New("invalid_document_type")
	ErrDocumentFiled       = errors.New("document_already_filed")
	ErrInvalidRate         = errors.New("invalid_rate")
)

type CreateRequest struct {
	Kind Kind `json:"kind"`
	// DocumentType overrides the default prefix for the kind.
	DocumentType string              `json:"document_type,omitempty"`
	Description  string              `json:"description,omitempty"`
	Direction    taxdomain.Direction `json:"direction"`
	Amount       decimal.Decimal     `json:"amount"`
	Rate         decimal.Decimal     `json:"rate"`
	OccurredAt   *time.Time          `json:"occurred_at,omitempty"`
	// Metadata holds free-form caller fields such as a counterparty.
	Metadata map[string]any `json:"metadata,omitempty"`
}

type ListRequest struct {
	PageToken string
	PageSize  int32
	Kind      Kind
	From      *time.Time
	To        *time.Time
}

type ListResponse struct {
	Documents []Document          `json:"documents"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Document, error)
	Get(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	File(ctx context.Context, id string) (Document, error)
	Render(ctx context.Context, id string) ([]byte, error)
}
