package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	documentdomain "github.com/smallbiznis/khata/internal/document/domain"
	"github.com/smallbiznis/khata/internal/orgcontext"
	payrolldomain "github.com/smallbiznis/khata/internal/payroll/domain"
	reconciliationdomain "github.com/smallbiznis/khata/internal/reconciliation/domain"
	taxservice "github.com/smallbiznis/khata/internal/tax/service"
	"github.com/smallbiznis/khata/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePayrollService struct {
	processErr error
	lastOrg    string
}

func (f *fakePayrollService) Compute(ctx context.Context, req payrolldomain.ComputeRequest) (payrolldomain.Record, error) {
	return payrolldomain.Record{BaseSalary: req.BaseSalary, NetSalary: req.BaseSalary}, nil
}

func (f *fakePayrollService) Process(ctx context.Context, req payrolldomain.ProcessRequest) (payrolldomain.PayrollRecord, error) {
	if orgID, ok := orgcontext.OrgIDFromContext(ctx); ok {
		f.lastOrg = orgID.String()
	}
	if f.processErr != nil {
		return payrolldomain.PayrollRecord{}, f.processErr
	}
	return payrolldomain.PayrollRecord{EmployeeCode: req.EmployeeCode, Period: req.Period, PayslipNumber: "PAY-202603-001"}, nil
}

func (f *fakePayrollService) Get(ctx context.Context, id string) (payrolldomain.PayrollRecord, error) {
	return payrolldomain.PayrollRecord{}, payrolldomain.ErrNotFound
}

func (f *fakePayrollService) Payslip(ctx context.Context, id string) ([]byte, error) {
	return []byte("%PDF-1.4 payslip"), nil
}

type fakeDocumentService struct {
	fileErr error
	listReq documentdomain.ListRequest
}

func (f *fakeDocumentService) Create(ctx context.Context, req documentdomain.CreateRequest) (documentdomain.Document, error) {
	if _, ok := orgcontext.OrgIDFromContext(ctx); !ok {
		return documentdomain.Document{}, documentdomain.ErrInvalidOrganization
	}
	return documentdomain.Document{Kind: req.Kind, DocumentNumber: "INV-202603-001"}, nil
}

func (f *fakeDocumentService) Get(ctx context.Context, id string) (documentdomain.Document, error) {
	return documentdomain.Document{}, documentdomain.ErrInvalidID
}

func (f *fakeDocumentService) List(ctx context.Context, req documentdomain.ListRequest) (documentdomain.ListResponse, error) {
	f.listReq = req
	if req.PageToken == "garbage" {
		return documentdomain.ListResponse{}, pagination.ErrInvalidPageToken
	}
	return documentdomain.ListResponse{Documents: []documentdomain.Document{}}, nil
}

func (f *fakeDocumentService) File(ctx context.Context, id string) (documentdomain.Document, error) {
	if f.fileErr != nil {
		return documentdomain.Document{}, f.fileErr
	}
	return documentdomain.Document{Status: documentdomain.StatusFiled}, nil
}

func (f *fakeDocumentService) Render(ctx context.Context, id string) ([]byte, error) {
	return []byte("%PDF-1.4 summary"), nil
}

type fakeReconciliationService struct {
	statement string
	strategy  reconciliationdomain.Strategy
}

func (f *fakeReconciliationService) Propose(ctx context.Context, req reconciliationdomain.ProposeRequest) (reconciliationdomain.ProposeResult, error) {
	return reconciliationdomain.ProposeResult{
		Proposals: []reconciliationdomain.MatchProposal{},
		Unmatched: req.Transactions,
	}, nil
}

func (f *fakeReconciliationService) ProposeFromStatement(ctx context.Context, statement io.Reader, strategy reconciliationdomain.Strategy) (reconciliationdomain.ProposeResult, error) {
	raw, err := io.ReadAll(statement)
	if err != nil {
		return reconciliationdomain.ProposeResult{}, err
	}
	f.statement = string(raw)
	f.strategy = strategy
	if strings.TrimSpace(f.statement) == "" {
		return reconciliationdomain.ProposeResult{}, fmt.Errorf("%w: empty statement", reconciliationdomain.ErrInvalidStatement)
	}
	return reconciliationdomain.ProposeResult{}, nil
}

type testServer struct {
	engine         *gin.Engine
	payroll        *fakePayrollService
	documents      *fakeDocumentService
	reconciliation *fakeReconciliationService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ts := testServer{
		engine:         engine,
		payroll:        &fakePayrollService{},
		documents:      &fakeDocumentService{},
		reconciliation: &fakeReconciliationService{},
	}

	log := zap.NewNop()
	srv := NewServer(ServerParams{
		Gin:               engine,
		Log:               log,
		TaxSvc:            taxservice.NewService(taxservice.ServiceParams{Log: log}),
		PayrollSvc:        ts.payroll,
		DocumentSvc:       ts.documents,
		ReconciliationSvc: ts.reconciliation,
	})
	srv.RegisterAPIRoutes()
	return ts
}

func (ts testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

var orgHeader = map[string]string{HeaderOrg: "1001"}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestComputeTaxBreakdown(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/v1/tax/breakdown", `{"direction":"exclusive","amount":"1000","rate":"18"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			BaseAmount  decimal.Decimal `json:"base_amount"`
			TaxAmount   decimal.Decimal `json:"tax_amount"`
			TotalAmount decimal.Decimal `json:"total_amount"`
			CGST        decimal.Decimal `json:"cgst_amount"`
			SGST        decimal.Decimal `json:"sgst_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.BaseAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.Data.TaxAmount.Equal(decimal.NewFromInt(180)))
	assert.True(t, resp.Data.TotalAmount.Equal(decimal.NewFromInt(1180)))
	assert.True(t, resp.Data.CGST.Equal(decimal.NewFromInt(90)))
	assert.True(t, resp.Data.SGST.Equal(decimal.NewFromInt(90)))
}

func TestComputeTaxBreakdownValidationError(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/v1/tax/breakdown", `{"direction":"exclusive","amount":"-1","rate":"18"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeError(t, rec)
	assert.Equal(t, "validation_error", payload.Type)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid_input", payload.Errors[0].Code)
}

func TestComputeTaxBreakdownMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/v1/tax/breakdown", `{"amount":`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Errors[0].Code)
}

func TestValidateRegistration(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/v1/tax/registrations/validate", `{"id":"27AAPFU0939F1ZV"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"jurisdiction_code":27`)
	assert.Contains(t, rec.Body.String(), `"pan":"AAPFU0939F"`)

	rec = ts.do(t, http.MethodPost, "/v1/tax/registrations/validate", `{"id":"not-an-id"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "format_error", decodeError(t, rec).Errors[0].Code)
}

func TestSuggestCategories(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/v1/tax/categories?q=Software+development", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"998314"`)

	rec = ts.do(t, http.MethodGet, "/v1/tax/categories?q=zzzz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestOrgContextRejectsMalformedHeader(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/v1/payroll", `{}`, map[string]string{HeaderOrg: "acme"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_org_id", decodeError(t, rec).Errors[0].Code)
}

func TestProcessPayrollPassesOrg(t *testing.T) {
	ts := newTestServer(t)
	body := `{"base_salary":"30000","employee_code":" E-1 ","employee_name":"Asha","period":"2026-03"}`
	rec := ts.do(t, http.MethodPost, "/v1/payroll", body, orgHeader)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "1001", ts.payroll.lastOrg)
	assert.Contains(t, rec.Body.String(), `"employee_code":"E-1"`)
}

func TestProcessPayrollConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.payroll.processErr = payrolldomain.ErrAlreadyProcessed

	rec := ts.do(t, http.MethodPost, "/v1/payroll", `{"base_salary":"30000","employee_code":"E-1","period":"2026-03"}`, orgHeader)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeError(t, rec).Type)
}

func TestGetPayrollNotFound(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/v1/payroll/42", "", orgHeader)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Type)
}

func TestGetPayslipReturnsPDF(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/v1/payroll/42/payslip", "", orgHeader)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestCreateDocumentWithoutOrg(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/v1/documents", `{"kind":"sale","direction":"exclusive","amount":"100","rate":"18"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeError(t, rec)
	assert.Equal(t, "invalid_organization", payload.Errors[0].Code)
	assert.Equal(t, "organization", payload.Errors[0].Field)
}

func TestCreateDocument(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/v1/documents", `{"kind":"sale","direction":"exclusive","amount":"100","rate":"18"}`, orgHeader)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"document_number":"INV-202603-001"`)
}

func TestListDocumentsQuery(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/v1/documents?kind=SALE&page_size=10&from=2026-03-01&to=2026-03-31", "", orgHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, documentdomain.KindSale, ts.documents.listReq.Kind)
	assert.Equal(t, int32(10), ts.documents.listReq.PageSize)
	require.NotNil(t, ts.documents.listReq.To)
	assert.Equal(t, time.Date(2026, 3, 31, 23, 59, 59, 999999999, time.UTC), *ts.documents.listReq.To)

	rec = ts.do(t, http.MethodGet, "/v1/documents?from=yesterday", "", orgHeader)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_from", decodeError(t, rec).Errors[0].Code)

	rec = ts.do(t, http.MethodGet, "/v1/documents?from=2026-04-01&to=2026-03-01", "", orgHeader)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_range", decodeError(t, rec).Errors[0].Code)

	rec = ts.do(t, http.MethodGet, "/v1/documents?page_token=garbage", "", orgHeader)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_page_token", decodeError(t, rec).Errors[0].Code)
}

func TestFileDocumentAlreadyFiled(t *testing.T) {
	ts := newTestServer(t)
	ts.documents.fileErr = documentdomain.ErrDocumentFiled

	rec := ts.do(t, http.MethodPost, "/v1/documents/42/file", "", orgHeader)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "document already filed", decodeError(t, rec).Message)
}

func TestGetDocumentInvalidID(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/v1/documents/abc", "", orgHeader)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_id", decodeError(t, rec).Errors[0].Code)
}

func TestRenderDocumentReturnsPDF(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/v1/documents/42/pdf", "", orgHeader)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestProposeMatches(t *testing.T) {
	ts := newTestServer(t)
	body := `{"transactions":[{"id":"t1","amount":"100","occurred_at":"2026-03-01T00:00:00Z","direction":"credit"}]}`
	rec := ts.do(t, http.MethodPost, "/v1/reconciliation/proposals", body, orgHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"id":"t1"`)
}

func TestProposeFromStatement(t *testing.T) {
	ts := newTestServer(t)

	csv := "date,amount,direction\n2026-03-01,100,credit\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/reconciliation/statements?strategy=Closest", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set(HeaderOrg, "1001")
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, csv, ts.reconciliation.statement)
	assert.Equal(t, reconciliationdomain.StrategyClosest, ts.reconciliation.strategy)
}

func TestProposeFromEmptyStatement(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/v1/reconciliation/statements", "", orgHeader)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeError(t, rec)
	assert.Equal(t, "invalid_statement", payload.Errors[0].Code)
	assert.Equal(t, "invalid_statement: empty statement", payload.Errors[0].Message)
}

func TestMapErrorDefaultsToInternal(t *testing.T) {
	status, payload := mapError(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)

	errType, code := classifyErrorForLog(documentdomain.ErrNotFound)
	assert.Equal(t, "not_found", errType)
	assert.Equal(t, "not_found", code)
}

func TestMapErrorScaleViolations(t *testing.T) {
	status, payload := mapError(fmt.Errorf("%w: amounts need more than 10 decimal places", payrolldomain.ErrInvalidAmountScale))
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid_amount_scale", payload.Errors[0].Code)
	assert.Equal(t, "amount_scale", payload.Errors[0].Field)

	status, payload = mapError(documentdomain.ErrInvalidRate)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "rate", payload.Errors[0].Field)
}
