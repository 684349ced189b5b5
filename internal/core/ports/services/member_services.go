package services

import (
	"context"
	"mime/multipart"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

// MemberUploads are the optional files attached to a registration.
type MemberUploads struct {
	Photo    *multipart.FileHeader
	Document *multipart.FileHeader
}

// UploadStore persists uploaded files and returns their stored name.
type UploadStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// MemberReaderSvc defines read operations on members.
type MemberReaderSvc interface {
	GetMember(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.Member, error)
	ListMembers(ctx context.Context, scope domain.TenantScope, params dto.ListMembersParams) ([]domain.Member, error)

	// ValidateMember answers the public card check; it ignores tenant scope.
	ValidateMember(ctx context.Context, memberID int64) (*domain.MemberValidation, error)
}

// MemberWriterSvc defines write operations on members.
type MemberWriterSvc interface {
	RegisterMember(ctx context.Context, scope domain.TenantScope, req dto.RegisterMemberRequest, uploads MemberUploads) (*domain.Member, error)
	UpdateMember(ctx context.Context, scope domain.TenantScope, memberID int64, req dto.UpdateMemberRequest, actor domain.Actor) (*domain.Member, error)
	UpdateMemberStatus(ctx context.Context, scope domain.TenantScope, memberID int64, status domain.MemberStatus, actor domain.Actor) (*domain.Member, error)
	DeleteMember(ctx context.Context, scope domain.TenantScope, memberID int64, actor domain.Actor) error
}

// MemberSvcFacade combines all member service interfaces.
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
}
