package repositories

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// MemberReader defines read operations for members.
type MemberReader interface {
	FindMemberByID(ctx context.Context, scope domain.TenantScope, memberID int64) (*domain.Member, error)
	ListMembers(ctx context.Context, scope domain.TenantScope, status *domain.MemberStatus, limit, offset int) ([]domain.Member, error)
}

// MemberWriter defines write operations for members.
type MemberWriter interface {
	SaveMember(ctx context.Context, member domain.Member) (int64, error)
	UpdateMember(ctx context.Context, member domain.Member) error
	DeleteMember(ctx context.Context, scope domain.TenantScope, memberID int64) error
}

// MemberRepositoryFacade combines all member repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
