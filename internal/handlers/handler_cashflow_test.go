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

func (s *APITestSuite) TestListCashFlow_FiltersAndSummary() {
	date := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	entries := []domain.LedgerEntry{
		{EntryID: 2, Description: "Dues", Amount: decimal.NewFromInt(50), Date: date, Type: domain.EntryTypeIn, CategoryID: 1,
			Category: &domain.Category{CategoryID: 1, Name: "Dues", Color: "#22c55e", Type: domain.EntryTypeIn}, Version: 1},
	}
	summary := domain.LedgerSummary{TotalIn: decimal.NewFromInt(50), TotalOut: decimal.Zero, Balance: decimal.NewFromInt(50)}
	s.cashFlow.On("ListEntries", mock.Anything, domain.ScopedTo(3), dto.ListLedgerParams{Type: "IN", StartDate: "2024-05-01"}).
		Return(entries, summary, nil).Once()

	w := s.do(http.MethodGet, "/api/cashflow?type=IN&startDate=2024-05-01", "", &operator)
	s.Equal(http.StatusOK, w.Code)

	var body dto.ListLedgerResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body.Entries, 1)
	s.Equal("Dues", body.Entries[0].Category.Name)
	s.True(body.Entries[0].Date.Equal(date))
	s.True(body.Summary.Balance.Equal(decimal.NewFromInt(50)))
}

func (s *APITestSuite) TestListCashFlow_InvalidTypeFilter() {
	w := s.do(http.MethodGet, "/api/cashflow?type=SIDEWAYS", "", &operator)
	s.Equal(http.StatusBadRequest, w.Code)
	s.cashFlow.AssertNotCalled(s.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestCreateCashFlow_Success() {
	created := &domain.LedgerEntry{
		EntryID: 9, Description: "Dues", Amount: decimal.NewFromInt(50),
		Date: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC), Type: domain.EntryTypeIn, CategoryID: 1,
		OperatorID: operator.UserID, OperatorName: operator.Name, TenantID: int64Ptr(3), Version: 1,
	}
	s.cashFlow.On("CreateEntry", mock.Anything, domain.ScopedTo(3), mock.MatchedBy(func(req dto.CreateLedgerEntryRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(50)) && req.Type == "IN" && req.Date == "2024-05-10" && req.CategoryID == 1
	}), operator.Actor()).Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/cashflow",
		`{"description":"Dues","amount":"50","date":"2024-05-10","type":"IN","categoryId":1}`, &operator)
	s.Equal(http.StatusCreated, w.Code)

	var body dto.LedgerEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(int64(9), body.ID)
	s.Equal("Otto", body.OperatorName)
	s.Equal(1, body.Version)
}

func (s *APITestSuite) TestCreateCashFlow_ClosedPeriodIsConflict() {
	s.cashFlow.On("CreateEntry", mock.Anything, domain.ScopedTo(3), mock.Anything, operator.Actor()).
		Return(nil, apperrors.NewConflictError("period 05/2024 is closed")).Once()

	w := s.do(http.MethodPost, "/api/cashflow",
		`{"description":"Dues","amount":"50","date":"2024-05-10","type":"IN","categoryId":1}`, &operator)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("period 05/2024 is closed", s.errorBody(w))
}

func (s *APITestSuite) TestCreateCashFlow_BadBody() {
	w := s.do(http.MethodPost, "/api/cashflow", `{"description":"Dues","amount":"50","date":"2024-05-10","categoryId":1}`, &operator)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/cashflow", `{"description":"Dues","amount":"50","date":"2024-05-10","type":"XFER","categoryId":1}`, &operator)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestUpdateCashFlow_StaleVersion() {
	s.cashFlow.On("UpdateEntry", mock.Anything, domain.ScopedTo(3), int64(9), mock.MatchedBy(func(req dto.UpdateLedgerEntryRequest) bool {
		return req.Version != nil && *req.Version == 1
	}), operator.Actor()).Return(nil, apperrors.NewConflictError("ledger entry was modified by someone else")).Once()

	w := s.do(http.MethodPut, "/api/cashflow/9",
		`{"description":"Dues","amount":"55","date":"2024-05-10","type":"IN","categoryId":1,"version":1}`, &operator)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *APITestSuite) TestUpdateCashFlow_InvalidID() {
	w := s.do(http.MethodPut, "/api/cashflow/abc",
		`{"description":"Dues","amount":"55","date":"2024-05-10","type":"IN","categoryId":1}`, &operator)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestDeleteCashFlow_Roles() {
	w := s.do(http.MethodDelete, "/api/cashflow/9", "", &operator)
	s.Equal(http.StatusForbidden, w.Code)

	s.cashFlow.On("DeleteEntry", mock.Anything, domain.ScopedTo(3), int64(9), admin.Actor()).Return(nil).Once()
	w = s.do(http.MethodDelete, "/api/cashflow/9", "", &admin)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *APITestSuite) TestDeleteCashFlow_OtherTenantIsNotFound() {
	s.cashFlow.On("DeleteEntry", mock.Anything, domain.ScopedTo(3), int64(40), admin.Actor()).
		Return(apperrors.NewNotFoundError("ledger entry 40 not found")).Once()

	w := s.do(http.MethodDelete, "/api/cashflow/40", "", &admin)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestCategories_ReadOpenWriteAdmin() {
	s.category.On("ListCategories", mock.Anything, mock.MatchedBy(func(t *domain.EntryType) bool {
		return t != nil && *t == domain.EntryTypeOut
	})).Return([]domain.Category{{CategoryID: 2, Name: "Rent", Type: domain.EntryTypeOut, Color: "#ef4444", Version: 1}}, nil).Once()

	w := s.do(http.MethodGet, "/api/categories?type=OUT", "", &operator)
	s.Equal(http.StatusOK, w.Code)
	var list []dto.CategoryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list, 1)
	s.Equal("Rent", list[0].Name)

	w = s.do(http.MethodPost, "/api/categories", `{"name":"Events","type":"IN"}`, &operator)
	s.Equal(http.StatusForbidden, w.Code)

	s.category.On("CreateCategory", mock.Anything, dto.CreateCategoryRequest{Name: "Events", Type: "IN"}, admin.Actor()).
		Return(&domain.Category{CategoryID: 3, Name: "Events", Type: domain.EntryTypeIn, Color: "#6b7280", Version: 1}, nil).Once()
	w = s.do(http.MethodPost, "/api/categories", `{"name":"Events","type":"IN"}`, &admin)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *APITestSuite) TestDeleteCategory_InUse() {
	s.category.On("DeleteCategory", mock.Anything, int64(1), admin.Actor()).
		Return(apperrors.NewConflictError("category 1 is used by ledger entries")).Once()

	w := s.do(http.MethodDelete, "/api/categories/1", "", &admin)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("category 1 is used by ledger entries", s.errorBody(w))
}
