package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/handlers"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) PostDocument(ctx context.Context, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostDocumentResult), args.Error(1)
}

func (m *MockDocumentService) VoidDocument(ctx context.Context, req dto.VoidDocumentRequest) (*dto.VoidDocumentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VoidDocumentResult), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock PDCService ---
type MockPDCService struct {
	mock.Mock
}

func (m *MockPDCService) CreatePDC(ctx context.Context, orgID string, req dto.CreatePDCRequest, actorID string) (*domain.PDC, error) {
	args := m.Called(ctx, orgID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PDC), args.Error(1)
}

func (m *MockPDCService) UpdatePDC(ctx context.Context, orgID, pdcID string, req dto.UpdatePDCRequest, actorID string) (*domain.PDC, error) {
	args := m.Called(ctx, orgID, pdcID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PDC), args.Error(1)
}

func (m *MockPDCService) GetPDC(ctx context.Context, orgID, pdcID string) (*domain.PDC, error) {
	args := m.Called(ctx, orgID, pdcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PDC), args.Error(1)
}

func (m *MockPDCService) TransitionPDC(ctx context.Context, req dto.TransitionPDCRequest) (*dto.PDCTransitionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PDCTransitionResult), args.Error(1)
}

var _ portssvc.PDCSvcFacade = (*MockPDCService)(nil)

// --- Mock GLService ---
type MockGLService struct {
	mock.Mock
}

func (m *MockGLService) GetHeader(ctx context.Context, orgID, headerID string) (*domain.GLHeader, error) {
	args := m.Called(ctx, orgID, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLHeader), args.Error(1)
}

func (m *MockGLService) ListHeaders(ctx context.Context, orgID string, params dto.ListGLHeadersParams) (*dto.ListGLHeadersResponse, error) {
	args := m.Called(ctx, orgID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListGLHeadersResponse), args.Error(1)
}

func (m *MockGLService) ListHeadersForSource(ctx context.Context, orgID string, sourceType domain.SourceType, sourceID string) ([]domain.GLHeader, error) {
	args := m.Called(ctx, orgID, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLHeader), args.Error(1)
}

func (m *MockGLService) TrialCheck(ctx context.Context, orgID string) (*dto.TrialCheckResponse, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TrialCheckResponse), args.Error(1)
}

var _ portssvc.GLSvcFacade = (*MockGLService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockDocument *MockDocumentService
	mockPDC      *MockPDCService
	mockGL       *MockGLService
	jwtSecret    string
	orgID        string
	actorID      string
}

const testIssuer = "ledger-test"

func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.orgID = uuid.NewString()
	suite.actorID = uuid.NewString()

	suite.mockDocument = new(MockDocumentService)
	suite.mockPDC = new(MockPDCService)
	suite.mockGL = new(MockGLService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, testIssuer))
	handlers.RegisterOrgRoutes(v1.Group("/orgs/:orgID"), &portssvc.ServiceContainer{
		Document: suite.mockDocument,
		PDC:      suite.mockPDC,
		GL:       suite.mockGL,
	})
}

func (suite *LedgerHandlerTestSuite) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.actorID))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) documentPath(docType, docID, action string) string {
	return fmt.Sprintf("/api/v1/orgs/%s/documents/%s/%s/%s", suite.orgID, docType, docID, action)
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestPostDocument_WritesStoredBody() {
	docID := uuid.NewString()
	stored := []byte(`{"header":{"headerID":"h-1"},"document":{"status":"POSTED"}}`)

	suite.mockDocument.On("PostDocument", mock.Anything, mock.MatchedBy(func(r dto.PostDocumentRequest) bool {
		return r.OrgID == suite.orgID &&
			r.DocumentType == domain.DocPaymentReceived &&
			r.DocumentID == docID &&
			r.ActorID == suite.actorID &&
			r.IdempotencyToken == "retry-1"
	})).Return(&dto.PostDocumentResult{
		Header: domain.GLHeader{HeaderID: "h-1"},
		Body:   stored,
	}, nil).Once()

	w := suite.do(http.MethodPost, suite.documentPath("payment-received", docID, "post"), "", map[string]string{
		middleware.IdempotencyKeyHeader: "retry-1",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(string(stored), w.Body.String())
	suite.Empty(w.Header().Get(middleware.IdempotentReplayedHeader))
	suite.mockDocument.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostDocument_ReplayMarksResponse() {
	docID := uuid.NewString()
	stored := []byte(`{"header":{"headerID":"h-1"}}`)

	suite.mockDocument.On("PostDocument", mock.Anything, mock.AnythingOfType("dto.PostDocumentRequest")).
		Return(&dto.PostDocumentResult{Header: domain.GLHeader{HeaderID: "h-1"}, Body: stored, Replayed: true}, nil).Once()

	w := suite.do(http.MethodPost, suite.documentPath("invoice", docID, "post"), "", map[string]string{
		middleware.IdempotencyKeyHeader: "retry-1",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("true", w.Header().Get(middleware.IdempotentReplayedHeader))
	suite.Equal(string(stored), w.Body.String())
}

func (suite *LedgerHandlerTestSuite) TestPostDocument_PeriodLockedIsConflict() {
	suite.mockDocument.On("PostDocument", mock.Anything, mock.AnythingOfType("dto.PostDocumentRequest")).
		Return(nil, apperrors.ErrPeriodLocked).Once()

	w := suite.do(http.MethodPost, suite.documentPath("bill", uuid.NewString(), "post"), "", nil)

	suite.Equal(http.StatusConflict, w.Code)
	var body map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Contains(body["error"], "period is locked")
}

func (suite *LedgerHandlerTestSuite) TestPostDocument_NotFound() {
	docID := uuid.NewString()
	suite.mockDocument.On("PostDocument", mock.Anything, mock.AnythingOfType("dto.PostDocumentRequest")).
		Return(nil, apperrors.NewNotFoundError("invoice", docID)).Once()

	w := suite.do(http.MethodPost, suite.documentPath("invoice", docID, "post"), "", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostDocument_InvariantHidesDetail() {
	suite.mockDocument.On("PostDocument", mock.Anything, mock.AnythingOfType("dto.PostDocumentRequest")).
		Return(nil, apperrors.ErrLedgerImbalance).Once()

	w := suite.do(http.MethodPost, suite.documentPath("invoice", uuid.NewString(), "post"), "", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "debits and credits")
}

func (suite *LedgerHandlerTestSuite) TestPostDocument_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, suite.documentPath("invoice", uuid.NewString(), "post"), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDocument.AssertNotCalled(suite.T(), "PostDocument", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestPostDocument_RejectsMalformedIdempotencyKey() {
	w := suite.do(http.MethodPost, suite.documentPath("invoice", uuid.NewString(), "post"), "", map[string]string{
		middleware.IdempotencyKeyHeader: "two words",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDocument.AssertNotCalled(suite.T(), "PostDocument", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestVoidDocument_PassesVoidDate() {
	docID := uuid.NewString()
	voidDate := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockDocument.On("VoidDocument", mock.Anything, mock.MatchedBy(func(r dto.VoidDocumentRequest) bool {
		return r.DocumentType == domain.DocCreditNote &&
			r.DocumentID == docID &&
			r.VoidDate != nil && r.VoidDate.Equal(voidDate) &&
			r.Memo == "customer dispute"
	})).Return(&dto.VoidDocumentResult{
		ReversalHeader: domain.GLHeader{HeaderID: "r-1"},
		Body:           []byte(`{"reversalHeader":{"headerID":"r-1"}}`),
	}, nil).Once()

	w := suite.do(http.MethodPost, suite.documentPath("credit-note", docID, "void"),
		`{"voidDate":"2024-03-31T00:00:00Z","memo":"customer dispute"}`, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDocument.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestVoidDocument_EmptyBodyDefaultsDate() {
	suite.mockDocument.On("VoidDocument", mock.Anything, mock.MatchedBy(func(r dto.VoidDocumentRequest) bool {
		return r.VoidDate == nil
	})).Return(&dto.VoidDocumentResult{Body: []byte(`{}`)}, nil).Once()

	w := suite.do(http.MethodPost, suite.documentPath("invoice", uuid.NewString(), "void"), "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDocument.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestVoidDocument_AlreadyReversed() {
	suite.mockDocument.On("VoidDocument", mock.Anything, mock.AnythingOfType("dto.VoidDocumentRequest")).
		Return(nil, apperrors.ErrAlreadyReversed).Once()

	w := suite.do(http.MethodPost, suite.documentPath("invoice", uuid.NewString(), "void"), "", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestTransitionPDC_LowercasesAction() {
	pdcID := uuid.NewString()
	suite.mockPDC.On("TransitionPDC", mock.Anything, mock.MatchedBy(func(r dto.TransitionPDCRequest) bool {
		return r.PDCID == pdcID && r.Action == domain.PDCActionClear && r.ActionDate == nil
	})).Return(&dto.PDCTransitionResult{
		PDC:  domain.PDC{PDCID: pdcID, Status: domain.PDCCleared},
		Body: []byte(`{"pdc":{"status":"CLEARED"}}`),
	}, nil).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/orgs/%s/pdcs/%s/CLEAR", suite.orgID, pdcID), "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"pdc":{"status":"CLEARED"}}`, w.Body.String())
	suite.mockPDC.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTransitionPDC_BodyCarriesOnlyActionDate() {
	pdcID := uuid.NewString()
	actionDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	suite.mockPDC.On("TransitionPDC", mock.Anything, mock.MatchedBy(func(r dto.TransitionPDCRequest) bool {
		return r.OrgID == suite.orgID &&
			r.PDCID == pdcID &&
			r.Action == domain.PDCActionDeposit &&
			r.ActorID == suite.actorID &&
			r.ActionDate != nil && r.ActionDate.Equal(actionDate)
	})).Return(&dto.PDCTransitionResult{Body: []byte(`{}`)}, nil).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/orgs/%s/pdcs/%s/deposit", suite.orgID, pdcID),
		`{"actionDate":"2024-06-10T00:00:00Z","pdcID":"other","orgID":"other","actorID":"other"}`, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPDC.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTransitionPDC_InvalidTransition() {
	suite.mockPDC.On("TransitionPDC", mock.Anything, mock.AnythingOfType("dto.TransitionPDCRequest")).
		Return(nil, apperrors.ErrInvalidTransition).Once()

	w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/orgs/%s/pdcs/%s/bounce", suite.orgID, uuid.NewString()), "", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListGLHeaders_BindsQuery() {
	next := "abc"
	suite.mockGL.On("ListHeaders", mock.Anything, suite.orgID, mock.MatchedBy(func(p dto.ListGLHeadersParams) bool {
		return p.Limit == 5 && p.NextToken != nil && *p.NextToken == next
	})).Return(&dto.ListGLHeadersResponse{Headers: []domain.GLHeader{{HeaderID: "h-1"}}}, nil).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/orgs/%s/gl/headers?limit=5&nextToken=%s", suite.orgID, next), "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListGLHeadersResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Headers, 1)
}

func (suite *LedgerHandlerTestSuite) TestListGLHeaders_RejectsOversizedLimit() {
	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/orgs/%s/gl/headers?limit=1000", suite.orgID), "", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGL.AssertNotCalled(suite.T(), "ListHeaders", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestTrialCheck() {
	suite.mockGL.On("TrialCheck", mock.Anything, suite.orgID).Return(&dto.TrialCheckResponse{
		TotalDebit:  decimal.NewFromInt(150),
		TotalCredit: decimal.NewFromInt(150),
		Balanced:    true,
	}, nil).Once()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/orgs/%s/gl/trial-check", suite.orgID), "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialCheckResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balanced)
	suite.True(resp.TotalDebit.Equal(decimal.NewFromInt(150)))
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
