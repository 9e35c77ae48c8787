package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/khata/internal/clock"
	"github.com/smallbiznis/khata/internal/document/domain"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
	numberingservice "github.com/smallbiznis/khata/internal/numbering/service"
	"github.com/smallbiznis/khata/internal/orgcontext"
	payrolldomain "github.com/smallbiznis/khata/internal/payroll/domain"
	"github.com/smallbiznis/khata/internal/providers/pdf"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
	"github.com/smallbiznis/khata/pkg/db"
	"github.com/smallbiznis/khata/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var documentTypeRe = regexp.MustCompile(`^[A-Z0-9]{1,12}$`)

// rateScale matches the stored precision of documents.rate.
const rateScale int32 = 4

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	TaxSvc   taxdomain.Service
	Numberer numberingdomain.Service
	PDF      pdf.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	taxSvc   taxdomain.Service
	numberer numberingdomain.Service
	pdf      pdf.Provider
	retry    numberingservice.RetryPolicy
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("document.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		taxSvc:   p.TaxSvc,
		numberer: p.Numberer,
		pdf:      p.PDF,
		retry:    numberingservice.RetryPolicy{Conflict: db.IsDuplicateKeyErr},
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Document, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Document{}, domain.ErrInvalidOrganization
	}

	prefix, err := documentType(req.Kind, req.DocumentType)
	if err != nil {
		return domain.Document{}, err
	}

	if !req.Rate.Equal(req.Rate.Truncate(rateScale)) {
		return domain.Document{}, fmt.Errorf("%w: rate allows at most %d decimal places", domain.ErrInvalidRate, rateScale)
	}

	breakdown, err := s.taxSvc.Compute(ctx, taxdomain.ComputeRequest{
		Direction: req.Direction,
		Amount:    req.Amount,
		Rate:      req.Rate,
	})
	if err != nil {
		return domain.Document{}, err
	}

	now := s.clock.Now().UTC()
	occurredAt := now
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	doc := domain.Document{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		Kind:         req.Kind,
		DocumentType: prefix,
		Description:  strings.TrimSpace(req.Description),
		BaseAmount:   breakdown.BaseAmount,
		TaxAmount:    breakdown.TaxAmount,
		TotalAmount:  breakdown.TotalAmount,
		Rate:         breakdown.Rate,
		CGSTAmount:   breakdown.SplitA,
		SGSTAmount:   breakdown.SplitB,
		IGSTAmount:   breakdown.InterStateAmount,
		Status:       domain.StatusDraft,
		OccurredAt:   occurredAt,
		Metadata:     normalizeMetadata(req.Metadata),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = numberingservice.IssueWithRetry(ctx, s.numberer, orgID, prefix, now, s.retry, func(ctx context.Context, number string) error {
		doc.DocumentNumber = number
		return s.repo.Insert(ctx, s.db, &doc)
	})
	if err != nil {
		s.log.Error("failed to create document",
			zap.String("org_id", orgID.String()),
			zap.String("document_type", prefix),
			zap.Error(err),
		)
		return domain.Document{}, err
	}

	s.log.Info("document created",
		zap.String("org_id", orgID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("document_number", doc.DocumentNumber),
	)
	return doc, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Document, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Document{}, domain.ErrInvalidOrganization
	}

	docID, err := parseID(id)
	if err != nil {
		return domain.Document{}, err
	}

	doc, err := s.repo.FindByID(ctx, s.db, orgID, docID)
	if err != nil {
		return domain.Document{}, err
	}
	if doc == nil {
		return domain.Document{}, domain.ErrNotFound
	}
	return *doc, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListResponse{}, domain.ErrInvalidOrganization
	}
	if req.Kind != "" && req.Kind != domain.KindSale && req.Kind != domain.KindExpense {
		return domain.ListResponse{}, domain.ErrInvalidKind
	}

	page := pagination.Pagination{PageToken: req.PageToken, PageSize: int(req.PageSize)}
	filter := domain.ListFilter{
		Kind:     req.Kind,
		From:     req.From,
		To:       req.To,
		PageSize: page.Size(),
	}

	if token := strings.TrimSpace(req.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return domain.ListResponse{}, err
		}
		afterID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return domain.ListResponse{}, pagination.ErrInvalidPageToken
		}
		afterAt, err := time.Parse(time.RFC3339Nano, cursor.OccurredAt)
		if err != nil {
			return domain.ListResponse{}, pagination.ErrInvalidPageToken
		}
		filter.AfterID = afterID
		filter.AfterAt = &afterAt
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, filter.PageSize, func(doc *domain.Document) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:         doc.ID.String(),
			OccurredAt: doc.OccurredAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})

	docs := make([]domain.Document, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		docs = append(docs, *item)
	}

	return domain.ListResponse{Documents: docs, PageInfo: pageInfo}, nil
}

// File freezes a draft document. Filed documents reject further changes.
func (s *Service) File(ctx context.Context, id string) (domain.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	if doc.Status == domain.StatusFiled {
		return domain.Document{}, domain.ErrDocumentFiled
	}

	now := s.clock.Now().UTC()
	updated, err := s.repo.MarkFiled(ctx, s.db, doc.OrgID, doc.ID, now)
	if err != nil {
		return domain.Document{}, err
	}
	if !updated {
		return domain.Document{}, domain.ErrDocumentFiled
	}

	doc.Status = domain.StatusFiled
	doc.FiledAt = &now
	doc.UpdatedAt = now
	return doc, nil
}

func (s *Service) Render(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.pdf.RenderTaxSummary(ctx, pdf.TaxSummaryData{
		DocumentNumber: doc.DocumentNumber,
		Kind:           string(doc.Kind),
		Description:    doc.Description,
		IssuedAt:       doc.OccurredAt,
		Rate:           doc.Rate,
		BaseAmount:     doc.BaseAmount,
		SplitA:         doc.CGSTAmount,
		SplitB:         doc.SGSTAmount,
		InterState:     doc.IGSTAmount,
		TaxAmount:      doc.TaxAmount,
		TotalAmount:    doc.TotalAmount,
	})
}

func documentType(kind domain.Kind, requested string) (string, error) {
	var prefix string
	switch kind {
	case domain.KindSale:
		prefix = domain.PrefixSale
	case domain.KindExpense:
		prefix = domain.PrefixExpense
	default:
		return "", domain.ErrInvalidKind
	}

	if requested = strings.ToUpper(strings.TrimSpace(requested)); requested != "" {
		if !documentTypeRe.MatchString(requested) || requested == payrolldomain.PayslipPrefix {
			return "", domain.ErrInvalidDocumentType
		}
		prefix = requested
	}
	return prefix, nil
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}

func normalizeMetadata(input map[string]any) datatypes.JSONMap {
	output := datatypes.JSONMap{}
	for key, value := range input {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		output[key] = value
	}
	return output
}
