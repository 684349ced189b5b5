package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (s *APITestSuite) sampleReport() *domain.ClosureReport {
	return &domain.ClosureReport{
		Month:  5,
		Year:   2024,
		Status: domain.ClosureClosed,
		Summary: domain.ReportSummary{
			InitialBalance: decimal.NewFromInt(60),
			TotalIn:        decimal.NewFromInt(50),
			TotalOut:       decimal.Zero,
			FinalBalance:   decimal.NewFromInt(110),
		},
		Breakdown: []domain.CategoryTotal{{CategoryID: 1, Name: "Dues", Type: domain.EntryTypeIn, Amount: decimal.NewFromInt(50)}},
	}
}

func (s *APITestSuite) TestListClosures_DefaultsToCurrentYear() {
	year := time.Now().UTC().Year()
	rows := make([]domain.MonthBalance, 12)
	for i := range rows {
		rows[i] = domain.MonthBalance{Month: i + 1, Year: year, Status: domain.ClosureOpen}
	}
	s.closure.On("ListClosures", mock.Anything, domain.ScopedTo(3), year).Return(rows, nil).Once()

	w := s.do(http.MethodGet, "/api/finance/closure", "", &operator)
	s.Equal(http.StatusOK, w.Code)

	var body []dto.MonthBalanceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body, 12)
}

func (s *APITestSuite) TestListClosures_InvalidYear() {
	w := s.do(http.MethodGet, "/api/finance/closure?year=20", "", &operator)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestCloseMonth_Roles() {
	w := s.do(http.MethodPost, "/api/finance/closure", `{"month":5,"year":2024}`, &operator)
	s.Equal(http.StatusForbidden, w.Code)

	// a closure locks the month for every association
	w = s.do(http.MethodPost, "/api/finance/closure", `{"month":5,"year":2024}`, &admin)
	s.Equal(http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, "/api/finance/closure/reopen", `{"month":5,"year":2024,"reason":"typo"}`, &admin)
	s.Equal(http.StatusForbidden, w.Code)
	s.closure.AssertNotCalled(s.T(), "CloseMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.closure.AssertNotCalled(s.T(), "ReopenMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	closedAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s.closure.On("CloseMonth", mock.Anything, domain.GlobalScope(), domain.Period{Month: 5, Year: 2024}, superAdmin.Actor()).
		Return(&domain.MonthlyClosure{ClosureID: 1, Month: 5, Year: 2024, Status: domain.ClosureClosed, ClosedAt: &closedAt, ClosedBy: int64Ptr(1)}, nil).Once()

	w = s.do(http.MethodPost, "/api/finance/closure", `{"month":5,"year":2024}`, &superAdmin)
	s.Equal(http.StatusOK, w.Code)
	var body dto.MonthlyClosureResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(domain.ClosureClosed, body.Status)
}

func (s *APITestSuite) TestCloseMonth_FutureIsRejected() {
	s.closure.On("CloseMonth", mock.Anything, domain.GlobalScope(), domain.Period{Month: 12, Year: 2999}, superAdmin.Actor()).
		Return(nil, apperrors.NewValidationFailedError("cannot close a future month")).Once()

	w := s.do(http.MethodPost, "/api/finance/closure", `{"month":12,"year":2999}`, &superAdmin)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("cannot close a future month", s.errorBody(w))
}

func (s *APITestSuite) TestReopenMonth() {
	w := s.do(http.MethodPost, "/api/finance/closure/reopen", `{"month":5,"year":2024}`, &superAdmin)
	s.Equal(http.StatusBadRequest, w.Code, "reason is mandatory")

	s.closure.On("ReopenMonth", mock.Anything, domain.GlobalScope(), domain.Period{Month: 4, Year: 2024}, "typo", superAdmin.Actor()).
		Return(nil, apperrors.NewNotFoundError("04/2024 was never closed")).Once()
	w = s.do(http.MethodPost, "/api/finance/closure/reopen", `{"month":4,"year":2024,"reason":"typo"}`, &superAdmin)
	s.Equal(http.StatusNotFound, w.Code)

	s.closure.On("ReopenMonth", mock.Anything, domain.GlobalScope(), domain.Period{Month: 5, Year: 2024}, "late receipt", superAdmin.Actor()).
		Return(&domain.MonthlyClosure{ClosureID: 1, Month: 5, Year: 2024, Status: domain.ClosureOpen, ReopenReason: strPtr("late receipt")}, nil).Once()
	w = s.do(http.MethodPost, "/api/finance/closure/reopen", `{"month":5,"year":2024,"reason":"late receipt"}`, &superAdmin)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestCheckStatus() {
	s.closure.On("CheckStatus", mock.Anything, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)).
		Return(domain.Period{Month: 5, Year: 2024}, domain.ClosureClosed, nil).Once()

	w := s.do(http.MethodGet, "/api/finance/closure/check?date=2024-05-10", "", &operator)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"month":5,"year":2024,"status":"CLOSED"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/finance/closure/check?date=10/05/2024", "", &operator)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestReport_JSON() {
	actor := operator.Actor()
	s.closure.On("GenerateReport", mock.Anything, domain.ScopedTo(3), domain.Period{Month: 5, Year: 2024}, &actor).
		Return(s.sampleReport(), nil).Once()

	w := s.do(http.MethodGet, "/api/finance/closure/report?month=5&year=2024", "", &operator)
	s.Equal(http.StatusOK, w.Code)

	var body dto.ClosureReportResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.True(body.Summary.InitialBalance.Equal(decimal.NewFromInt(60)))
	s.True(body.Summary.FinalBalance.Equal(decimal.NewFromInt(110)))
	s.Require().Len(body.Breakdown, 1)
	s.Equal("Dues", body.Breakdown[0].Name)
}

func (s *APITestSuite) TestReport_PDF() {
	actor := admin.Actor()
	association := &domain.Association{AssociationID: 3, Name: "Vila Nova", Status: domain.AssociationActive}
	s.closure.On("GenerateReport", mock.Anything, domain.ScopedTo(3), domain.Period{Month: 5, Year: 2024}, &actor).
		Return(s.sampleReport(), nil).Once()
	s.association.On("GetAssociation", mock.Anything, int64(3)).Return(association, nil).Once()

	w := s.do(http.MethodGet, "/api/finance/closure/report?month=5&year=2024&format=pdf", "", &admin)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "closure-report-2024-05.pdf")
	s.True(len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:4]) == "%PDF")
	s.Equal(association, s.renderer.association)
}

func (s *APITestSuite) TestReport_InvalidFormat() {
	w := s.do(http.MethodGet, "/api/finance/closure/report?month=5&year=2024&format=xlsx", "", &operator)
	s.Equal(http.StatusBadRequest, w.Code)
}

func strPtr(v string) *string { return &v }
