package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

const loginBody = `{"email":"ana@example.com","password":"secret123"}`

func (s *APITestSuite) TestLogin_Success() {
	s.token.On("Login", mock.Anything, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"}).
		Return("signed.jwt", &admin, nil).Once()

	w := s.do(http.MethodPost, "/api/auth/login", loginBody, nil)
	s.Equal(http.StatusOK, w.Code)

	var body dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("signed.jwt", body.Token)
	s.Equal("Ana", body.User.Name)
}

func (s *APITestSuite) TestLogin_RateLimited() {
	s.token.On("Login", mock.Anything, mock.Anything).
		Return("", nil, apperrors.ErrUnauthorized).Twice()

	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/login", loginBody, nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/auth/login", loginBody, nil).Code)
	s.Equal(http.StatusTooManyRequests, s.do(http.MethodPost, "/api/auth/login", loginBody, nil).Code)
}

func (s *APITestSuite) TestLogin_BadBody() {
	w := s.do(http.MethodPost, "/api/auth/login", `{"email":"not-an-email"}`, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestGoogleLogin_Disabled() {
	s.google.On("Enabled").Return(false).Once()

	w := s.do(http.MethodGet, "/api/auth/google/login", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestGoogleLogin_RedirectsWithState() {
	s.google.On("Enabled").Return(true).Once()
	s.google.On("AuthCodeURL", mock.AnythingOfType("string")).Return("https://accounts.example/auth").Once()

	w := s.do(http.MethodGet, "/api/auth/google/login", "", nil)
	s.Equal(http.StatusTemporaryRedirect, w.Code)
	s.Equal("https://accounts.example/auth", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal("oauth_state", cookies[0].Name)
	s.NotEmpty(cookies[0].Value)
	s.True(cookies[0].HttpOnly)
}

func (s *APITestSuite) callback(state, cookieState, code string) *httptest.ResponseRecorder {
	q := url.Values{"state": {state}, "code": {code}}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?"+q.Encode(), nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: cookieState})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) TestGoogleCallback_StateMismatch() {
	s.Equal(http.StatusBadRequest, s.callback("abc", "xyz", "code").Code)
	s.Equal(http.StatusBadRequest, s.callback("abc", "", "code").Code)
	s.google.AssertNotCalled(s.T(), "LoginWithCode", mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestGoogleCallback_RedirectsToFrontend() {
	s.google.On("LoginWithCode", mock.Anything, "good").Return("signed.jwt", &operator, nil).Once()
	s.google.On("LoginWithCode", mock.Anything, "bad").Return("", nil, apperrors.ErrForbidden).Once()

	w := s.callback("abc", "abc", "good")
	s.Equal(http.StatusTemporaryRedirect, w.Code)
	s.Equal("http://frontend.test/login?token=signed.jwt", w.Header().Get("Location"))

	w = s.callback("abc", "abc", "bad")
	s.Equal(http.StatusTemporaryRedirect, w.Code)
	s.Equal("http://frontend.test/login?error=google_login_failed", w.Header().Get("Location"))
}

func (s *APITestSuite) TestGoogleToken() {
	s.google.On("LoginWithIDToken", mock.Anything, "id-token").Return("signed.jwt", &superAdmin, nil).Once()

	w := s.do(http.MethodPost, "/api/auth/google/token", `{"idToken":"id-token"}`, nil)
	s.Equal(http.StatusOK, w.Code)

	var body dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(domain.RoleSuperAdmin, body.User.Role)
}
