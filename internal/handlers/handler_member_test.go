package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/middleware"
	"github.com/stretchr/testify/mock"
)

// registrationForm builds a multipart registration body with an optional photo.
func (s *APITestSuite) registrationForm(photo []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fields := map[string]string{"name": "João Silva", "cpf": "529.982.247-25", "email": "joao@example.com"}
	for k, v := range fields {
		s.Require().NoError(mw.WriteField(k, v))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "me.png")
		s.Require().NoError(err)
		_, err = part.Write(photo)
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.Close())
	return body, mw.FormDataContentType()
}

func (s *APITestSuite) postRegistration(photo []byte, headers ...string) *httptest.ResponseRecorder {
	body, contentType := s.registrationForm(photo)
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", contentType)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) TestRegisterMember_Public() {
	s.association.On("ResolveActiveTenant", mock.Anything, int64(3)).
		Return(&domain.Association{AssociationID: 3, Status: domain.AssociationActive}, nil).Once()
	s.member.On("RegisterMember", mock.Anything, domain.ScopedTo(3),
		mock.MatchedBy(func(req dto.RegisterMemberRequest) bool {
			return req.Name == "João Silva" && req.CPF == "529.982.247-25"
		}),
		mock.MatchedBy(func(u portssvc.MemberUploads) bool {
			return u.Photo != nil && u.Photo.Filename == "me.png" && u.Document == nil
		}),
	).Return(&domain.Member{MemberID: 12, Name: "João Silva", CPF: "52998224725", Status: domain.MemberPending, PhotoPath: "a.png"}, nil).Once()

	w := s.postRegistration([]byte("\x89PNG\r\n\x1a\nsmall"), middleware.TenantHeader, "3")
	s.Equal(http.StatusCreated, w.Code)

	var body dto.MemberResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(domain.MemberPending, body.Status)
	s.Equal("/uploads/a.png", body.PhotoURL)
}

func (s *APITestSuite) TestRegisterMember_OversizedPhoto() {
	w := s.postRegistration(bytes.Repeat([]byte("x"), 65))
	s.Equal(http.StatusBadRequest, w.Code)
	s.member.AssertNotCalled(s.T(), "RegisterMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestRegisterMember_InvalidCPF() {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	s.Require().NoError(mw.WriteField("name", "João"))
	s.Require().NoError(mw.WriteField("cpf", "111.111.111-11"))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestValidateMember_NoToken() {
	s.member.On("ValidateMember", mock.Anything, int64(12)).Return(&domain.MemberValidation{
		Valid: true, MemberID: 12, Name: "João Silva", Status: domain.MemberActive, AssociationName: "Vila Nova",
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/public/validate/12", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"valid":true,"id":12,"name":"João Silva","status":"ACTIVE","association":"Vila Nova"}`, w.Body.String())
}

func (s *APITestSuite) TestMemberStatus_Admin() {
	s.member.On("UpdateMemberStatus", mock.Anything, domain.ScopedTo(3), int64(12), domain.MemberActive, admin.Actor()).
		Return(&domain.Member{MemberID: 12, Name: "João Silva", Status: domain.MemberActive}, nil).Once()

	w := s.do(http.MethodPatch, "/api/admin/members/12/status", `{"status":"ACTIVE"}`, &admin)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPatch, "/api/admin/members/12/status", `{"status":"BANNED"}`, &admin)
	s.Equal(http.StatusBadRequest, w.Code)
}
