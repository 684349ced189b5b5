package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
	"github.com/SscSPs/association_manager_app/internal/utils"
	"github.com/SscSPs/association_manager_app/internal/utils/accounting"
)

type memberService struct {
	BaseService
	memberRepo      portsrepo.MemberRepositoryFacade
	associationRepo portsrepo.AssociationReader
	uploads         portssvc.UploadStore
}

// NewMemberService creates the member service. uploads may be nil, in which
// case registrations with files are rejected.
func NewMemberService(memberRepo portsrepo.MemberRepositoryFacade, associationRepo portsrepo.AssociationReader, uploads portssvc.UploadStore, audit portssvc.AuditRecorderSvc) portssvc.MemberSvcFacade {
	return &memberService{
		BaseService:     BaseService{Audit: audit},
		memberRepo:      memberRepo,
		associationRepo: associationRepo,
		uploads:         uploads,
	}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

func (s *memberService) GetMember(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, scope, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member", slog.Int64("member_id", memberID))
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context, scope domain.TenantScope, params dto.ListMembersParams) ([]domain.Member, error) {
	var status *domain.MemberStatus
	if params.Status != "" {
		st := domain.MemberStatus(params.Status)
		if !st.IsValid() {
			return nil, apperrors.NewValidationFailedError("invalid status")
		}
		status = &st
	}
	members, err := s.memberRepo.ListMembers(ctx, scope, status, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members")
		return nil, err
	}
	return members, nil
}

func (s *memberService) ValidateMember(ctx context.Context, memberID int64) (*domain.MemberValidation, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, domain.GlobalScope(), memberID)
	if err != nil {
		return nil, err
	}
	result := &domain.MemberValidation{
		Valid:    member.Status == domain.MemberActive,
		MemberID: member.MemberID,
		Name:     member.Name,
		Status:   member.Status,
	}
	if member.AssociationID != nil && s.associationRepo != nil {
		association, err := s.associationRepo.FindAssociationByID(ctx, *member.AssociationID)
		if err != nil {
			s.LogDebug(ctx, "Association of validated member not found", slog.Int64("member_id", memberID))
		} else {
			result.AssociationName = association.Name
		}
	}
	return result, nil
}

func parseBirthDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := accounting.ParseQueryDate(raw)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("invalid birthDate: " + err.Error())
	}
	return &d, nil
}

func (s *memberService) storeUpload(ctx context.Context, file *multipart.FileHeader, saved *[]string) (string, error) {
	if file == nil {
		return "", nil
	}
	if s.uploads == nil {
		return "", apperrors.NewValidationFailedError("file uploads are not enabled")
	}
	name, err := s.uploads.Save(ctx, file)
	if err != nil {
		return "", err
	}
	*saved = append(*saved, name)
	return name, nil
}

func (s *memberService) discardUploads(ctx context.Context, names []string) {
	for _, name := range names {
		if err := s.uploads.Remove(name); err != nil {
			s.LogError(ctx, err, "Failed to remove orphan upload", slog.String("file", name))
		}
	}
}

func (s *memberService) RegisterMember(ctx context.Context, scope domain.TenantScope, req dto.RegisterMemberRequest, uploads portssvc.MemberUploads) (*domain.Member, error) {
	cpf := utils.NormalizeCPF(req.CPF)
	if !utils.ValidateCPF(cpf) {
		return nil, apperrors.NewValidationFailedError("invalid CPF")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	var saved []string
	photo, err := s.storeUpload(ctx, uploads.Photo, &saved)
	if err != nil {
		return nil, err
	}
	document, err := s.storeUpload(ctx, uploads.Document, &saved)
	if err != nil {
		s.discardUploads(ctx, saved)
		return nil, err
	}

	now := s.now()
	member := domain.Member{
		AssociationID: scope.TenantID(),
		Name:          name,
		CPF:           cpf,
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		BirthDate:     birthDate,
		Address:       strings.TrimSpace(req.Address),
		Status:        domain.MemberPending,
		PhotoPath:     photo,
		DocumentPath:  document,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	id, err := s.memberRepo.SaveMember(ctx, member)
	if err != nil {
		s.discardUploads(ctx, saved)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicateError("a member with this CPF is already registered")
		}
		s.LogError(ctx, err, "Failed to save member")
		return nil, err
	}
	member.MemberID = id

	s.recordAudit(ctx, domain.AuditRecord{
		Action:      domain.AuditCreate,
		EntityType:  domain.EntityMember,
		EntityID:    strconv.FormatInt(id, 10),
		Description: "Member registered: " + member.Name,
		New:         member,
		TenantID:    member.AssociationID,
	})
	s.LogInfo(ctx, "Member registered", slog.Int64("member_id", id))
	return &member, nil
}

func (s *memberService) UpdateMember(ctx context.Context, scope domain.TenantScope, memberID int64, req dto.UpdateMemberRequest, actor domain.Actor) (*domain.Member, error) {
	current, err := s.GetMember(ctx, scope, memberID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
		if updated.Name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
	}
	if req.Email != nil {
		updated.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		updated.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		updated.Address = strings.TrimSpace(*req.Address)
	}
	if req.BirthDate != nil {
		if updated.BirthDate, err = parseBirthDate(*req.BirthDate); err != nil {
			return nil, err
		}
	}
	updated.UpdatedAt = s.now()

	if err := s.memberRepo.UpdateMember(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update member", slog.Int64("member_id", memberID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditUpdate,
		EntityType:  domain.EntityMember,
		EntityID:    strconv.FormatInt(memberID, 10),
		Description: "Member updated: " + updated.Name,
		Old:         current,
		New:         updated,
		TenantID:    updated.AssociationID,
	})
	return &updated, nil
}

func (s *memberService) UpdateMemberStatus(ctx context.Context, scope domain.TenantScope, memberID int64, status domain.MemberStatus, actor domain.Actor) (*domain.Member, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationFailedError("invalid status")
	}
	current, err := s.GetMember(ctx, scope, memberID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Status = status
	updated.UpdatedAt = s.now()
	if err := s.memberRepo.UpdateMember(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update member status", slog.Int64("member_id", memberID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditUpdate,
		EntityType:  domain.EntityMember,
		EntityID:    strconv.FormatInt(memberID, 10),
		Description: "Member status changed from " + string(current.Status) + " to " + string(status),
		Old:         current,
		New:         updated,
		TenantID:    updated.AssociationID,
	})
	return &updated, nil
}

func (s *memberService) DeleteMember(ctx context.Context, scope domain.TenantScope, memberID int64, actor domain.Actor) error {
	current, err := s.GetMember(ctx, scope, memberID)
	if err != nil {
		return err
	}
	if err := s.memberRepo.DeleteMember(ctx, scope, memberID); err != nil {
		s.LogError(ctx, err, "Failed to delete member", slog.Int64("member_id", memberID))
		return err
	}

	if s.uploads != nil {
		var files []string
		for _, f := range []string{current.PhotoPath, current.DocumentPath} {
			if f != "" {
				files = append(files, f)
			}
		}
		s.discardUploads(ctx, files)
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditDelete,
		EntityType:  domain.EntityMember,
		EntityID:    strconv.FormatInt(memberID, 10),
		Description: "Member deleted: " + current.Name,
		Old:         current,
		TenantID:    current.AssociationID,
	})
	return nil
}
