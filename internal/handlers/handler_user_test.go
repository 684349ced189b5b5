package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/stretchr/testify/mock"
)

func (s *APITestSuite) TestCurrentUser_AnyRole() {
	s.user.On("GetUserByID", mock.Anything, operator.UserID).Return(&operator, nil).Once()

	w := s.do(http.MethodGet, "/api/users/me", "", &operator)
	s.Equal(http.StatusOK, w.Code)

	var body dto.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("Otto", body.Name)
	s.Equal(domain.RoleOperator, body.Role)
}

func (s *APITestSuite) TestUsers_OperatorsCannotManage() {
	w := s.do(http.MethodGet, "/api/users", "", &operator)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestCreateUser_AdminCannotCreateSuperAdmin() {
	w := s.do(http.MethodPost, "/api/users",
		`{"name":"Eve","email":"eve@example.com","password":"longenough","role":"SUPER_ADMIN"}`, &admin)
	s.Equal(http.StatusForbidden, w.Code)
	s.user.AssertNotCalled(s.T(), "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestCreateUser_AdminPinsAssociation() {
	s.user.On("CreateUser", mock.Anything, mock.MatchedBy(func(req dto.CreateUserRequest) bool {
		return req.Role == "OPERATOR" && req.AssociationID != nil && *req.AssociationID == 3
	}), admin.Actor()).Return(&domain.User{UserID: 10, Name: "Olga", Email: "olga@example.com", Role: domain.RoleOperator, AssociationID: int64Ptr(3), Active: true}, nil).Once()

	w := s.do(http.MethodPost, "/api/users",
		`{"name":"Olga","email":"olga@example.com","password":"longenough","role":"OPERATOR","associationId":8}`, &admin)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *APITestSuite) TestGetUser_OtherAssociationForbiddenForAdmin() {
	stranger := &domain.User{UserID: 20, Name: "Zed", Role: domain.RoleOperator, AssociationID: int64Ptr(8), Active: true}
	s.user.On("GetUserByID", mock.Anything, int64(20)).Return(stranger, nil).Twice()

	w := s.do(http.MethodGet, "/api/users/20", "", &admin)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/users/20", "", &superAdmin)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestUpdateUser_AdminCannotMoveUser() {
	s.user.On("GetUserByID", mock.Anything, operator.UserID).Return(&operator, nil).Once()

	w := s.do(http.MethodPut, "/api/users/4", `{"associationId":8}`, &admin)
	s.Equal(http.StatusForbidden, w.Code)
	s.user.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestDeleteUser() {
	s.user.On("GetUserByID", mock.Anything, operator.UserID).Return(&operator, nil).Once()
	s.user.On("DeleteUser", mock.Anything, operator.UserID, admin.Actor()).Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/users/4", "", &admin)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *APITestSuite) TestManageUser_AdminCannotTouchSuperAdminOfOwnAssociation() {
	owner := &domain.User{UserID: 30, Name: "Sol", Role: domain.RoleSuperAdmin, AssociationID: int64Ptr(3), Active: true}
	s.user.On("GetUserByID", mock.Anything, int64(30)).Return(owner, nil).Times(3)

	w := s.do(http.MethodPut, "/api/users/30", `{"password":"takeover123","active":false}`, &admin)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, "/api/users/30", "", &admin)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/users/30", "", &admin)
	s.Equal(http.StatusForbidden, w.Code)

	s.user.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.user.AssertNotCalled(s.T(), "DeleteUser", mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestManageUser_SuperAdminCanUpdateSuperAdmin() {
	owner := &domain.User{UserID: 30, Name: "Sol", Role: domain.RoleSuperAdmin, AssociationID: int64Ptr(3), Active: true}
	s.user.On("GetUserByID", mock.Anything, int64(30)).Return(owner, nil).Once()
	s.user.On("UpdateUser", mock.Anything, int64(30), mock.MatchedBy(func(req dto.UpdateUserRequest) bool {
		return req.Active != nil && !*req.Active
	}), superAdmin.Actor()).Return(&domain.User{UserID: 30, Name: "Sol", Role: domain.RoleSuperAdmin, Active: false}, nil).Once()

	w := s.do(http.MethodPut, "/api/users/30", `{"active":false}`, &superAdmin)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestGetUser_SuperAdminSeesOnlySelectedTenant() {
	s.association.On("ResolveActiveTenant", mock.Anything, int64(5)).
		Return(&domain.Association{AssociationID: 5, Status: domain.AssociationActive}, nil).Once()
	stranger := &domain.User{UserID: 20, Name: "Zed", Role: domain.RoleOperator, AssociationID: int64Ptr(8), Active: true}
	s.user.On("GetUserByID", mock.Anything, int64(20)).Return(stranger, nil).Once()

	w := s.do(http.MethodGet, "/api/users/20", "", &superAdmin, middleware.TenantHeader, "5")
	s.Equal(http.StatusNotFound, w.Code)
}
