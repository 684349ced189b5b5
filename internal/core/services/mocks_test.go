package services_test

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Repositories ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, scope domain.TenantScope, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, scope, limit, offset)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) LinkGoogleSubject(ctx context.Context, userID int64, subject string) error {
	return m.Called(ctx, userID, subject).Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, entryType *domain.EntryType) ([]domain.Category, error) {
	args := m.Called(ctx, entryType)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) CountEntriesByCategory(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	return m.Called(ctx, categoryID).Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, scope domain.TenantScope, entryID int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, entryID)
	entry, _ := args.Get(0).(*domain.LedgerEntry)
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, scope domain.TenantScope, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, filter)
	entries, _ := args.Get(0).([]domain.LedgerEntry)
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, scope domain.TenantScope, entryID int64) error {
	return m.Called(ctx, scope, entryID).Error(0)
}

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumBefore(ctx context.Context, scope domain.TenantScope, cutoff domain.Period) (domain.LedgerSummary, error) {
	args := m.Called(ctx, scope, cutoff)
	return args.Get(0).(domain.LedgerSummary), args.Error(1)
}

func (m *MockReportingRepository) MonthlyTotals(ctx context.Context, scope domain.TenantScope, year int) ([]domain.MonthTotals, error) {
	args := m.Called(ctx, scope, year)
	totals, _ := args.Get(0).([]domain.MonthTotals)
	return totals, args.Error(1)
}

func (m *MockReportingRepository) CategoryTotals(ctx context.Context, scope domain.TenantScope, period domain.Period) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, scope, period)
	lines, _ := args.Get(0).([]domain.CategoryTotal)
	return lines, args.Error(1)
}

type MockClosureRepository struct {
	mock.Mock
}

func (m *MockClosureRepository) FindClosure(ctx context.Context, period domain.Period) (*domain.MonthlyClosure, error) {
	args := m.Called(ctx, period)
	closure, _ := args.Get(0).(*domain.MonthlyClosure)
	return closure, args.Error(1)
}

func (m *MockClosureRepository) ListClosuresByYear(ctx context.Context, year int) ([]domain.MonthlyClosure, error) {
	args := m.Called(ctx, year)
	closures, _ := args.Get(0).([]domain.MonthlyClosure)
	return closures, args.Error(1)
}

func (m *MockClosureRepository) UpsertClosed(ctx context.Context, period domain.Period, closedBy int64, closedAt time.Time) (*domain.MonthlyClosure, error) {
	args := m.Called(ctx, period, closedBy, closedAt)
	closure, _ := args.Get(0).(*domain.MonthlyClosure)
	return closure, args.Error(1)
}

func (m *MockClosureRepository) FindClosureForUpdate(ctx context.Context, tx pgx.Tx, period domain.Period) (*domain.MonthlyClosure, error) {
	args := m.Called(ctx, tx, period)
	closure, _ := args.Get(0).(*domain.MonthlyClosure)
	return closure, args.Error(1)
}

func (m *MockClosureRepository) MarkReopened(ctx context.Context, tx pgx.Tx, period domain.Period, reopenedBy int64, reason string, reopenedAt time.Time) (*domain.MonthlyClosure, error) {
	args := m.Called(ctx, tx, period, reopenedBy, reason, reopenedAt)
	closure, _ := args.Get(0).(*domain.MonthlyClosure)
	return closure, args.Error(1)
}

func (m *MockClosureRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockClosureRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockClosureRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveLog(ctx context.Context, log domain.FinancialLog) (int64, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditRepository) ListLogs(ctx context.Context, scope domain.TenantScope, filter domain.AuditFilter) ([]domain.FinancialLog, error) {
	args := m.Called(ctx, scope, filter)
	logs, _ := args.Get(0).([]domain.FinancialLog)
	return logs, args.Error(1)
}

func (m *MockAuditRepository) ListLogsForEntity(ctx context.Context, scope domain.TenantScope, entityType, entityID string) ([]domain.FinancialLog, error) {
	args := m.Called(ctx, scope, entityType, entityID)
	logs, _ := args.Get(0).([]domain.FinancialLog)
	return logs, args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockSettingsRepository) PutSetting(ctx context.Context, key string, value json.RawMessage) error {
	return m.Called(ctx, key, value).Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.Member, error) {
	args := m.Called(ctx, scope, memberID)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, scope domain.TenantScope, status *domain.MemberStatus, limit, offset int) ([]domain.Member, error) {
	args := m.Called(ctx, scope, status, limit, offset)
	members, _ := args.Get(0).([]domain.Member)
	return members, args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) (int64, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) DeleteMember(ctx context.Context, scope domain.TenantScope, memberID int64) error {
	return m.Called(ctx, scope, memberID).Error(0)
}

type MockAssociationRepository struct {
	mock.Mock
}

func (m *MockAssociationRepository) FindAssociationByID(ctx context.Context, associationID int64) (*domain.Association, error) {
	args := m.Called(ctx, associationID)
	association, _ := args.Get(0).(*domain.Association)
	return association, args.Error(1)
}

func (m *MockAssociationRepository) ListAssociations(ctx context.Context) ([]domain.Association, error) {
	args := m.Called(ctx)
	associations, _ := args.Get(0).([]domain.Association)
	return associations, args.Error(1)
}

func (m *MockAssociationRepository) SaveAssociation(ctx context.Context, association domain.Association) (int64, error) {
	args := m.Called(ctx, association)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssociationRepository) UpdateAssociation(ctx context.Context, association domain.Association) error {
	return m.Called(ctx, association).Error(0)
}

func (m *MockAssociationRepository) DeleteAssociation(ctx context.Context, associationID int64) error {
	return m.Called(ctx, associationID).Error(0)
}

// --- Collaborators ---

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, rec domain.AuditRecord) {
	m.Called(ctx, rec)
}

func (m *MockAuditRecorder) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockAuditRecorder) SetEnabled(enabled bool) {
	m.Called(enabled)
}

type MockPeriodGuard struct {
	mock.Mock
}

func (m *MockPeriodGuard) EnsurePeriodOpen(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

type MockAuditPublisher struct {
	mock.Mock
}

func (m *MockAuditPublisher) Publish(ctx context.Context, log domain.FinancialLog) error {
	return m.Called(ctx, log).Error(0)
}

type MockUploadStore struct {
	mock.Mock
}

func (m *MockUploadStore) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockUploadStore) Remove(name string) error {
	return m.Called(name).Error(0)
}

var (
	_ portssvc.AuditRecorderSvc    = (*MockAuditRecorder)(nil)
	_ portssvc.PeriodGuardSvc      = (*MockPeriodGuard)(nil)
	_ portssvc.AuditEventPublisher = (*MockAuditPublisher)(nil)
	_ portssvc.UploadStore         = (*MockUploadStore)(nil)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func int64Ptr(v int64) *int64 { return &v }
