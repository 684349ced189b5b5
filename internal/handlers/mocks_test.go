package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CashFlowService ---
type MockCashFlowService struct {
	mock.Mock
}

func (m *MockCashFlowService) ListEntries(ctx context.Context, scope domain.TenantScope, params dto.ListLedgerParams) ([]domain.LedgerEntry, domain.LedgerSummary, error) {
	args := m.Called(ctx, scope, params)
	entries, _ := args.Get(0).([]domain.LedgerEntry)
	summary, _ := args.Get(1).(domain.LedgerSummary)
	return entries, summary, args.Error(2)
}
func (m *MockCashFlowService) MemberHistory(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.MemberHistory, error) {
	args := m.Called(ctx, scope, memberID)
	h, _ := args.Get(0).(*domain.MemberHistory)
	return h, args.Error(1)
}
func (m *MockCashFlowService) CreateEntry(ctx context.Context, scope domain.TenantScope, req dto.CreateLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, req, actor)
	e, _ := args.Get(0).(*domain.LedgerEntry)
	return e, args.Error(1)
}
func (m *MockCashFlowService) UpdateEntry(ctx context.Context, scope domain.TenantScope, entryID int64, req dto.UpdateLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, entryID, req, actor)
	e, _ := args.Get(0).(*domain.LedgerEntry)
	return e, args.Error(1)
}
func (m *MockCashFlowService) DeleteEntry(ctx context.Context, scope domain.TenantScope, entryID int64, actor domain.Actor) error {
	args := m.Called(ctx, scope, entryID, actor)
	return args.Error(0)
}

var _ portssvc.CashFlowSvcFacade = (*MockCashFlowService)(nil)

// --- Mock ClosureService ---
type MockClosureService struct {
	mock.Mock
}

func (m *MockClosureService) EnsurePeriodOpen(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}
func (m *MockClosureService) ListClosures(ctx context.Context, scope domain.TenantScope, year int) ([]domain.MonthBalance, error) {
	args := m.Called(ctx, scope, year)
	rows, _ := args.Get(0).([]domain.MonthBalance)
	return rows, args.Error(1)
}
func (m *MockClosureService) CheckStatus(ctx context.Context, date time.Time) (domain.Period, domain.ClosureStatus, error) {
	args := m.Called(ctx, date)
	period, _ := args.Get(0).(domain.Period)
	status, _ := args.Get(1).(domain.ClosureStatus)
	return period, status, args.Error(2)
}
func (m *MockClosureService) GenerateReport(ctx context.Context, scope domain.TenantScope, period domain.Period, actor *domain.Actor) (*domain.ClosureReport, error) {
	args := m.Called(ctx, scope, period, actor)
	r, _ := args.Get(0).(*domain.ClosureReport)
	return r, args.Error(1)
}
func (m *MockClosureService) CloseMonth(ctx context.Context, scope domain.TenantScope, period domain.Period, actor domain.Actor) (*domain.MonthlyClosure, error) {
	args := m.Called(ctx, scope, period, actor)
	c, _ := args.Get(0).(*domain.MonthlyClosure)
	return c, args.Error(1)
}
func (m *MockClosureService) ReopenMonth(ctx context.Context, scope domain.TenantScope, period domain.Period, reason string, actor domain.Actor) (*domain.MonthlyClosure, error) {
	args := m.Called(ctx, scope, period, reason, actor)
	c, _ := args.Get(0).(*domain.MonthlyClosure)
	return c, args.Error(1)
}

var _ portssvc.ClosureSvcFacade = (*MockClosureService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context, entryType *domain.EntryType) ([]domain.Category, error) {
	args := m.Called(ctx, entryType)
	list, _ := args.Get(0).([]domain.Category)
	return list, args.Error(1)
}
func (m *MockCategoryService) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Error(1)
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	args := m.Called(ctx, req, actor)
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req, actor)
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Error(1)
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID int64, actor domain.Actor) error {
	args := m.Called(ctx, categoryID, actor)
	return args.Error(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock AssociationService ---
type MockAssociationService struct {
	mock.Mock
}

func (m *MockAssociationService) ResolveActiveTenant(ctx context.Context, associationID int64) (*domain.Association, error) {
	args := m.Called(ctx, associationID)
	a, _ := args.Get(0).(*domain.Association)
	return a, args.Error(1)
}
func (m *MockAssociationService) GetAssociation(ctx context.Context, associationID int64) (*domain.Association, error) {
	args := m.Called(ctx, associationID)
	a, _ := args.Get(0).(*domain.Association)
	return a, args.Error(1)
}
func (m *MockAssociationService) ListAssociations(ctx context.Context) ([]domain.Association, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Association)
	return list, args.Error(1)
}
func (m *MockAssociationService) CreateAssociation(ctx context.Context, req dto.CreateAssociationRequest, actor domain.Actor) (*domain.Association, error) {
	args := m.Called(ctx, req, actor)
	a, _ := args.Get(0).(*domain.Association)
	return a, args.Error(1)
}
func (m *MockAssociationService) UpdateAssociation(ctx context.Context, associationID int64, req dto.UpdateAssociationRequest, actor domain.Actor) (*domain.Association, error) {
	args := m.Called(ctx, associationID, req, actor)
	a, _ := args.Get(0).(*domain.Association)
	return a, args.Error(1)
}
func (m *MockAssociationService) DeleteAssociation(ctx context.Context, associationID int64, actor domain.Actor) error {
	args := m.Called(ctx, associationID, actor)
	return args.Error(0)
}

var _ portssvc.AssociationSvcFacade = (*MockAssociationService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, scope domain.TenantScope, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, scope, limit, offset)
	list, _ := args.Get(0).([]domain.User)
	return list, args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, req, actor)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, userID, req, actor)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID int64, actor domain.Actor) error {
	args := m.Called(ctx, userID, actor)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *MockUserService) FindUserForGoogle(ctx context.Context, email, subject string) (*domain.User, error) {
	args := m.Called(ctx, email, subject)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock MemberService ---
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) GetMember(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.Member, error) {
	args := m.Called(ctx, scope, memberID)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}
func (m *MockMemberService) ListMembers(ctx context.Context, scope domain.TenantScope, params dto.ListMembersParams) ([]domain.Member, error) {
	args := m.Called(ctx, scope, params)
	list, _ := args.Get(0).([]domain.Member)
	return list, args.Error(1)
}
func (m *MockMemberService) ValidateMember(ctx context.Context, memberID int64) (*domain.MemberValidation, error) {
	args := m.Called(ctx, memberID)
	v, _ := args.Get(0).(*domain.MemberValidation)
	return v, args.Error(1)
}
func (m *MockMemberService) RegisterMember(ctx context.Context, scope domain.TenantScope, req dto.RegisterMemberRequest, uploads portssvc.MemberUploads) (*domain.Member, error) {
	args := m.Called(ctx, scope, req, uploads)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}
func (m *MockMemberService) UpdateMember(ctx context.Context, scope domain.TenantScope, memberID int64, req dto.UpdateMemberRequest, actor domain.Actor) (*domain.Member, error) {
	args := m.Called(ctx, scope, memberID, req, actor)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}
func (m *MockMemberService) UpdateMemberStatus(ctx context.Context, scope domain.TenantScope, memberID int64, status domain.MemberStatus, actor domain.Actor) (*domain.Member, error) {
	args := m.Called(ctx, scope, memberID, status, actor)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}
func (m *MockMemberService) DeleteMember(ctx context.Context, scope domain.TenantScope, memberID int64, actor domain.Actor) error {
	args := m.Called(ctx, scope, memberID, actor)
	return args.Error(0)
}

var _ portssvc.MemberSvcFacade = (*MockMemberService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}
func (m *MockTokenService) IssueToken(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

var _ portssvc.TokenSvc = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) Enabled() bool {
	return m.Called().Bool(0)
}
func (m *MockGoogleOAuthService) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}
func (m *MockGoogleOAuthService) LoginWithCode(ctx context.Context, code string) (string, *domain.User, error) {
	args := m.Called(ctx, code)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}
func (m *MockGoogleOAuthService) LoginWithIDToken(ctx context.Context, idToken string) (string, *domain.User, error) {
	args := m.Called(ctx, idToken)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}

var _ portssvc.GoogleOAuthSvc = (*MockGoogleOAuthService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, rec domain.AuditRecord) { m.Called(ctx, rec) }
func (m *MockAuditService) Enabled() bool                                     { return m.Called().Bool(0) }
func (m *MockAuditService) SetEnabled(enabled bool)                           { m.Called(enabled) }
func (m *MockAuditService) ListLogs(ctx context.Context, scope domain.TenantScope, params dto.ListLogsParams) (*dto.ListLogsResponse, error) {
	args := m.Called(ctx, scope, params)
	r, _ := args.Get(0).(*dto.ListLogsResponse)
	return r, args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetFeatures(ctx context.Context) (domain.SaaSFeatures, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).(domain.SaaSFeatures)
	return f, args.Error(1)
}
func (m *MockSettingsService) UpdateFeatures(ctx context.Context, features domain.SaaSFeatures, actor domain.Actor) (domain.SaaSFeatures, error) {
	args := m.Called(ctx, features, actor)
	f, _ := args.Get(0).(domain.SaaSFeatures)
	return f, args.Error(1)
}

var _ portssvc.SettingsSvc = (*MockSettingsService)(nil)

// stubRenderer returns a fixed document.
type stubRenderer struct {
	association *domain.Association
}

func (r *stubRenderer) RenderClosureReport(_ context.Context, _ *domain.ClosureReport, association *domain.Association) ([]byte, error) {
	r.association = association
	return []byte("%PDF-1.3 stub"), nil
}
