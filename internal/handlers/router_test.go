package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/handlers"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/SscSPs/association_manager_app/internal/platform/config"
	"github.com/SscSPs/association_manager_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "handler-test-secret"

func int64Ptr(v int64) *int64 { return &v }

var (
	superAdmin = domain.User{UserID: 1, Name: "Root", Role: domain.RoleSuperAdmin, Active: true}
	admin      = domain.User{UserID: 2, Name: "Ana", Role: domain.RoleAdmin, AssociationID: int64Ptr(3), Active: true}
	operator   = domain.User{UserID: 4, Name: "Otto", Role: domain.RoleOperator, AssociationID: int64Ptr(3), Active: true}
)

// APITestSuite drives the full route table with mocked services.
type APITestSuite struct {
	suite.Suite
	router   *gin.Engine
	cfg      *config.Config
	renderer *stubRenderer

	cashFlow    *MockCashFlowService
	closure     *MockClosureService
	category    *MockCategoryService
	association *MockAssociationService
	user        *MockUserService
	member      *MockMemberService
	token       *MockTokenService
	google      *MockGoogleOAuthService
	audit       *MockAuditService
	settings    *MockSettingsService
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(dto.RegisterValidators())

	s.cashFlow = new(MockCashFlowService)
	s.closure = new(MockClosureService)
	s.category = new(MockCategoryService)
	s.association = new(MockAssociationService)
	s.user = new(MockUserService)
	s.member = new(MockMemberService)
	s.token = new(MockTokenService)
	s.google = new(MockGoogleOAuthService)
	s.audit = new(MockAuditService)
	s.settings = new(MockSettingsService)
	s.renderer = &stubRenderer{}

	s.cfg = &config.Config{
		JWTSecret:       testJWTSecret,
		IsProduction:    true,
		FrontendBaseURL: "http://frontend.test",
		UploadMaxBytes:  64,
		LoginRateLimit:  "2-M",
	}
	container := &portssvc.ServiceContainer{
		Association: s.association,
		Category:    s.category,
		CashFlow:    s.cashFlow,
		Closure:     s.closure,
		Audit:       s.audit,
		Member:      s.member,
		User:        s.user,
		Settings:    s.settings,
		Token:       s.token,
		GoogleOAuth: s.google,
	}
	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, s.cfg, container, s.renderer))
}

func (s *APITestSuite) TearDownTest() {
	t := s.T()
	s.cashFlow.AssertExpectations(t)
	s.closure.AssertExpectations(t)
	s.category.AssertExpectations(t)
	s.association.AssertExpectations(t)
	s.user.AssertExpectations(t)
	s.member.AssertExpectations(t)
	s.token.AssertExpectations(t)
	s.google.AssertExpectations(t)
	s.settings.AssertExpectations(t)
}

func (s *APITestSuite) bearer(user domain.User) string {
	token, err := utils.GenerateJWT(user, testJWTSecret, time.Hour, "assoc-test")
	s.Require().NoError(err)
	return "Bearer " + token
}

// do sends a JSON request as user (nil for anonymous). Extra headers come in key, value pairs.
func (s *APITestSuite) do(method, path, body string, user *domain.User, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req.Header.Set("Authorization", s.bearer(*user))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func (s *APITestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *APITestSuite) TestProtectedRoutesNeedToken() {
	for _, path := range []string{"/api/cashflow", "/api/categories", "/api/finance/closure", "/api/users/me", "/api/admin/members"} {
		w := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (s *APITestSuite) TestAssociationUserIgnoresTenantHeader() {
	// The header is still resolved, but the token's association wins.
	s.association.On("ResolveActiveTenant", mock.Anything, int64(9)).
		Return(&domain.Association{AssociationID: 9, Status: domain.AssociationActive}, nil).Once()
	s.cashFlow.On("ListEntries", mock.Anything, domain.ScopedTo(3), dto.ListLedgerParams{}).
		Return([]domain.LedgerEntry{}, domain.LedgerSummary{}, nil).Once()

	w := s.do(http.MethodGet, "/api/cashflow", "", &operator, middleware.TenantHeader, "9")
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestSuperAdminFollowsTenantHeader() {
	s.association.On("ResolveActiveTenant", mock.Anything, int64(5)).
		Return(&domain.Association{AssociationID: 5, Status: domain.AssociationActive}, nil).Once()
	s.cashFlow.On("ListEntries", mock.Anything, domain.ScopedTo(5), dto.ListLedgerParams{}).
		Return([]domain.LedgerEntry{}, domain.LedgerSummary{}, nil).Once()

	w := s.do(http.MethodGet, "/api/cashflow", "", &superAdmin, middleware.TenantHeader, "5")
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestInactiveTenantFallsBackToGlobalScope() {
	s.association.On("ResolveActiveTenant", mock.Anything, int64(6)).
		Return(nil, apperrors.NewNotFoundError("association 6 not found")).Once()
	s.cashFlow.On("ListEntries", mock.Anything, domain.GlobalScope(), dto.ListLedgerParams{}).
		Return([]domain.LedgerEntry{}, domain.LedgerSummary{}, nil).Once()

	w := s.do(http.MethodGet, "/api/cashflow", "", &superAdmin, middleware.TenantHeader, "6")
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestMalformedTenantHeaderIsIgnored() {
	s.cashFlow.On("ListEntries", mock.Anything, domain.GlobalScope(), dto.ListLedgerParams{}).
		Return([]domain.LedgerEntry{}, domain.LedgerSummary{}, nil).Once()

	w := s.do(http.MethodGet, "/api/cashflow", "", &superAdmin, middleware.TenantHeader, "abc")
	s.Equal(http.StatusOK, w.Code)
	s.association.AssertNotCalled(s.T(), "ResolveActiveTenant", mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestAdminRoutesRejectOperators() {
	w := s.do(http.MethodGet, "/api/admin/members", "", &operator)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/finance/logs", "", &operator)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestSettingsUpdateNeedsSuperAdmin() {
	w := s.do(http.MethodPut, "/api/admin/settings/features", `{"AUDITORIA": false}`, &admin)
	s.Equal(http.StatusForbidden, w.Code)

	s.settings.On("UpdateFeatures", mock.Anything, domain.SaaSFeatures{Auditoria: false}, superAdmin.Actor()).
		Return(domain.SaaSFeatures{Auditoria: false}, nil).Once()
	w = s.do(http.MethodPut, "/api/admin/settings/features", `{"AUDITORIA": false}`, &superAdmin)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"AUDITORIA": false}`, w.Body.String())
}

func (s *APITestSuite) TestAuditLogsForAdmins() {
	s.audit.On("ListLogs", mock.Anything, domain.ScopedTo(3), mock.MatchedBy(func(p dto.ListLogsParams) bool {
		return p.Limit == 10 && p.EndDate == "2024-06-30"
	})).Return(&dto.ListLogsResponse{Logs: []dto.FinancialLogResponse{{ID: 7, Action: domain.AuditClose}}}, nil).Once()

	w := s.do(http.MethodGet, "/api/finance/logs?limit=10&endDate=2024-06-30", "", &admin)
	s.Equal(http.StatusOK, w.Code)

	var body dto.ListLogsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body.Logs, 1)
	s.Equal(int64(7), body.Logs[0].ID)
	s.Nil(body.NextToken)
	s.audit.AssertExpectations(s.T())
}

func (s *APITestSuite) TestServerErrorsHideCause() {
	s.cashFlow.On("ListEntries", mock.Anything, domain.ScopedTo(3), dto.ListLedgerParams{}).
		Return(nil, domain.LedgerSummary{}, apperrors.NewAppError(http.StatusInternalServerError, "failed to query ledger entries", io.ErrUnexpectedEOF)).Once()

	w := s.do(http.MethodGet, "/api/cashflow", "", &operator)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to list cash-flow entries", s.errorBody(w))
	s.NotContains(w.Body.String(), "unexpected EOF")
}

func (s *APITestSuite) TestMemberHistory() {
	s.cashFlow.On("MemberHistory", mock.Anything, domain.ScopedTo(3), int64(12)).Return(&domain.MemberHistory{
		Member:  domain.Member{MemberID: 12, Name: "João"},
		Entries: []domain.LedgerEntry{{EntryID: 1, Amount: decimal.NewFromInt(50), Type: domain.EntryTypeIn}},
		Summary: domain.LedgerSummary{TotalIn: decimal.NewFromInt(50), TotalOut: decimal.Zero, Balance: decimal.NewFromInt(50)},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/finance/members/12/history", "", &operator)
	s.Equal(http.StatusOK, w.Code)

	var body dto.MemberHistoryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("João", body.Member.Name)
	s.Len(body.Entries, 1)
	s.True(body.Summary.Balance.Equal(decimal.NewFromInt(50)))
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
