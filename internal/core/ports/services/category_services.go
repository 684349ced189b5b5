package services

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

// CategoryReaderSvc defines read operations on the category registry.
type CategoryReaderSvc interface {
	ListCategories(ctx context.Context, entryType *domain.EntryType) ([]domain.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error)
}

// CategoryWriterSvc defines write operations on the category registry.
type CategoryWriterSvc interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actor domain.Actor) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest, actor domain.Actor) (*domain.Category, error)

	// DeleteCategory fails with apperrors.ErrConflict while any entry references the category.
	DeleteCategory(ctx context.Context, categoryID int64, actor domain.Actor) error
}

// CategorySvcFacade combines all category service interfaces.
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
